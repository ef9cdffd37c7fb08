package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eddo81/wpkit/internal/naming"
)

// MinProjectNameLength is the minimum number of characters in a project name.
const MinProjectNameLength = 2

// DefaultEntrypoint is used when no entrypoint is configured.
const DefaultEntrypoint = "main"

// Author identifies the person credited in package.json and LICENSE.
type Author struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"email"`
}

// Display returns "Name <email>", "Name", or "" when no name is set.
func (a Author) Display() string {
	if a.Name == "" {
		return ""
	}
	if a.Email == "" {
		return a.Name
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// ProjectInput carries the raw answers used to build a ProjectConfig.
type ProjectInput struct {
	ProjectName string
	Description string
	Author      Author
	Features    []FeatureFlag
	Entrypoints []string

	// Now is the clock used for the copyright year. Defaults to time.Now.
	Now func() time.Time
}

// ProjectConfig is the validated description of the project being created.
// It is read-only: fields are reached through accessors and slices are
// copied on the way in and out.
type ProjectConfig struct {
	projectName string
	folderName  string
	packageName string
	description string
	author      Author
	year        int
	features    FeatureSet
	entrypoints []string
}

// NewProjectConfig validates in and derives the folder and package names.
func NewProjectConfig(in ProjectInput) (ProjectConfig, error) {
	name := strings.TrimSpace(in.ProjectName)
	if utf8.RuneCountInString(name) < MinProjectNameLength {
		return ProjectConfig{}, ErrProjectNameTooShort
	}

	folder := naming.ToDashCase(name)
	if !naming.IsFilesystemSafe(folder) {
		return ProjectConfig{}, fmt.Errorf("%w: %q", ErrInvalidFolderName, name)
	}

	for _, f := range in.Features {
		if !f.IsValid() {
			return ProjectConfig{}, fmt.Errorf("%w: %s", ErrUnknownFeature, f)
		}
	}

	entrypoints := slices.Clone(in.Entrypoints)
	if in.Entrypoints == nil {
		entrypoints = []string{DefaultEntrypoint}
	}
	if len(entrypoints) == 0 {
		return ProjectConfig{}, ErrNoEntrypoints
	}
	seen := make(map[string]bool, len(entrypoints))
	for _, e := range entrypoints {
		if !naming.IsFilesystemSafe(e) || naming.ToDashCase(e) != e {
			return ProjectConfig{}, fmt.Errorf("%w: %q", ErrInvalidEntrypoint, e)
		}
		if seen[e] {
			return ProjectConfig{}, fmt.Errorf("%w: %q", ErrDuplicateEntrypoint, e)
		}
		seen[e] = true
	}

	now := in.Now
	if now == nil {
		now = time.Now
	}

	return ProjectConfig{
		projectName: name,
		folderName:  folder,
		packageName: naming.ToSnakeCase(name),
		description: strings.TrimSpace(in.Description),
		author: Author{
			Name:  strings.TrimSpace(in.Author.Name),
			Email: strings.TrimSpace(in.Author.Email),
		},
		year:        now().Year(),
		features:    NewFeatureSet(in.Features...),
		entrypoints: entrypoints,
	}, nil
}

// ProjectName returns the trimmed name as entered by the user.
func (c ProjectConfig) ProjectName() string { return c.projectName }

// FolderName returns the dash-case directory name of the project.
func (c ProjectConfig) FolderName() string { return c.folderName }

// PackageName returns the snake_case form of the project name.
func (c ProjectConfig) PackageName() string { return c.packageName }

// Description returns the optional project description.
func (c ProjectConfig) Description() string { return c.description }

// Author returns the project author.
func (c ProjectConfig) Author() Author { return c.author }

// Year returns the year captured when the config was built.
func (c ProjectConfig) Year() int { return c.year }

// Features returns the enabled feature flags.
func (c ProjectConfig) Features() FeatureSet { return c.features }

// Entrypoints returns a copy of the ordered entrypoint names.
func (c ProjectConfig) Entrypoints() []string { return slices.Clone(c.entrypoints) }
