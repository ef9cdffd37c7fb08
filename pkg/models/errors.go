package models

import "errors"

// Sentinel errors returned by NewProjectConfig.
var (
	// ErrProjectNameTooShort indicates the project name has fewer than MinProjectNameLength characters.
	ErrProjectNameTooShort = errors.New("the project name is required and must contain at least 2 characters")

	// ErrInvalidFolderName indicates the derived folder name is empty or not usable on disk.
	ErrInvalidFolderName = errors.New("project name does not produce a usable folder name")

	// ErrNoEntrypoints indicates the entrypoint list is empty after defaults were applied.
	ErrNoEntrypoints = errors.New("at least one entrypoint is required")

	// ErrDuplicateEntrypoint indicates the same entrypoint name was given twice.
	ErrDuplicateEntrypoint = errors.New("duplicate entrypoint")

	// ErrInvalidEntrypoint indicates an entrypoint name that is not a dash-case identifier.
	ErrInvalidEntrypoint = errors.New("invalid entrypoint name")

	// ErrUnknownFeature indicates a feature flag that wpkit does not know.
	ErrUnknownFeature = errors.New("unknown feature flag")
)
