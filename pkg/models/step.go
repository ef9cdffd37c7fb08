package models

import "fmt"

// StepResult is the outcome of one materialized file or orchestrator step.
type StepResult struct {
	Name      string `json:"name"`
	Succeeded bool   `json:"succeeded"`
	Err       error  `json:"-"`
}

// Detail returns the error text of a failed step, or an empty string.
func (r StepResult) Detail() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Label formats the result for display at position index in its list.
func (r StepResult) Label(index int) string {
	return fmt.Sprintf("%d. %s", index+1, r.Name)
}
