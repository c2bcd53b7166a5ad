package screening

// Report combines the four screening branch results. It is only ever
// assembled after every branch has completed successfully.
type Report struct {
	MatchPercentage        float64  `json:"match_percentage"`
	MissingSkills          []string `json:"missing_skills"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
	CoverNote              string   `json:"cover_note"`
}

// Branch names, used in errors and progress reporting.
const (
	BranchMatch         = "match"
	BranchMissingSkills = "missing-skills"
	BranchImprovements  = "improvements"
	BranchCoverNote     = "cover-note"
)

// matchResponse is the expected JSON from the match branch.
type matchResponse struct {
	MatchPercentage float64 `json:"match_percentage"`
}

// missingSkillsResponse is the expected JSON from the missing-skills branch.
type missingSkillsResponse struct {
	MissingSkills []string `json:"missing_skills"`
}

// improvementsResponse is the expected JSON from the improvements branch.
type improvementsResponse struct {
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// coverNoteResponse is the expected JSON from the cover-note branch.
type coverNoteResponse struct {
	CoverNote string `json:"cover_note"`
}
