package screening

import "fmt"

// APICallError represents an error from the LLM provider
type APICallError struct {
	Branch  string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed in %s branch: %s: %v", e.Branch, e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed in %s branch: %s", e.Branch, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing a branch response
type ParseError struct {
	Branch  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error in %s branch: %s: %v", e.Branch, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error in %s branch: %s", e.Branch, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError represents invalid caller input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
