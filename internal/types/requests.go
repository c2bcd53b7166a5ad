package types

import "github.com/go-playground/validator/v10"

// CaptionRequest is the request body for caption generation.
type CaptionRequest struct {
	Topic string `json:"topic" validate:"required"`
	Style string `json:"style" validate:"required,oneof=Official Exciting No-fluff Storytelling"`
}

// ScreeningRequest is the request body for the parallel resume screening.
// Exactly one of JobDescription and JobURL must be provided.
type ScreeningRequest struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
}

// InsightRequest is the request body for the full career intelligence analysis.
type InsightRequest struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`

	// Optional student context
	AcademicLevel string `json:"academic_level,omitempty"`
	FieldOfStudy  string `json:"field_of_study,omitempty"`
	Graduation    string `json:"graduation,omitempty"`
	CareerGoals   string `json:"career_goals,omitempty"`
	Internships   string `json:"internships,omitempty"`
}

// Validate validates the CaptionRequest using the validator.
func (r *CaptionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScreeningRequest, including the job source rule.
func (r *ScreeningRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validateJobSource(r.JobDescription, r.JobURL)
}

// Validate validates the InsightRequest, including the job source rule.
func (r *InsightRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validateJobSource(r.JobDescription, r.JobURL)
}

// JobSourceError signals that a request must name exactly one job source.
type JobSourceError struct{}

func (e *JobSourceError) Error() string {
	return "exactly one of job_description and job_url is required"
}

func validateJobSource(jobDescription, jobURL string) error {
	hasText := jobDescription != ""
	hasURL := jobURL != ""
	if hasText == hasURL {
		return &JobSourceError{}
	}
	return nil
}
