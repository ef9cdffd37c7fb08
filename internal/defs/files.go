package defs

// Common file names used across the project.
const (
	// ConfigYAML is the user defaults file under the wpkit config directory.
	ConfigYAML = "config.yaml"

	// ManifestYAML optionally describes the template tree of a cloned
	// template repository.
	ManifestYAML = "manifest.yaml"

	// IgnoreFile lists extra gitignore-style patterns excluded from a
	// cloned template tree.
	IgnoreFile = ".wpkitignore"
)

// Directory names and prefixes.
const (
	// AppDirName is the wpkit directory under the user config root.
	AppDirName = "wpkit"

	// CloneTemplatesDir is the template tree inside a cloned repository.
	CloneTemplatesDir = "src/templates"

	// TempDirPrefix prefixes the temporary clone directory inside the project root.
	TempDirPrefix = "temp-"
)

// Permissions for created project files.
const (
	DirPerm  = 0o755
	FilePerm = 0o644
	ExecPerm = 0o755
)
