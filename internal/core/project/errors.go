// Package project implements the core pipeline that turns a validated
// ProjectConfig into a new webpack project on disk: the preflight checks,
// the optional template clone, materialization of the template manifest,
// dependency installation and git initialization.
package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for the project package.
var (
	// ErrDestinationExists indicates a directory entry already exists at the project root.
	ErrDestinationExists = errors.New("project: destination already exists")

	// ErrToolUnavailable indicates a required external tool did not answer its version probe.
	ErrToolUnavailable = errors.New("project: required tool unavailable")

	// ErrCloneFailed indicates the template repository could not be cloned.
	ErrCloneFailed = errors.New("project: template clone failed")

	// ErrStepFailed indicates an orchestrator step failed.
	ErrStepFailed = errors.New("project: step failed")
)

// DestinationExistsError reports that the project folder is already taken.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("a folder named %q already exists at this location, choose a different project name and try again", e.Path)
}

func (e *DestinationExistsError) Unwrap() error { return ErrDestinationExists }

// ToolUnavailableError reports a tool whose "--version" probe failed.
type ToolUnavailableError struct {
	Tool string
	Err  error
}

func (e *ToolUnavailableError) Error() string {
	return fmt.Sprintf("unable to check %s's version (\"%s --version\"), make sure %s is installed and on your PATH: %v",
		e.Tool, e.Tool, e.Tool, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ToolUnavailableError) Unwrap() []error { return []error{ErrToolUnavailable, e.Err} }

// StepError identifies the orchestrator step that failed a run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *StepError) Unwrap() []error { return []error{ErrStepFailed, e.Err} }
