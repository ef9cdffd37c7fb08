// Package models provides the shared data models used across wpkit.
//
// # Project Configuration
//
// [ProjectConfig] is the validated, read-only description of the project
// being scaffolded. It is built once by [NewProjectConfig] from the
// collected answers and never changes afterwards:
//
//	cfg, err := models.NewProjectConfig(models.ProjectInput{
//	    ProjectName: "My App",
//	    Features:    []models.FeatureFlag{models.FeatureTailwind},
//	})
//	cfg.FolderName() // "my-app"
//
// # Feature Flags
//
// Optional groups of template files are gated on [FeatureFlag] values
// collected in a [FeatureSet]:
//   - tailwind: Tailwind CSS utility framework
//   - readme: README.md
//   - license: MIT LICENSE
//   - editorconfig: .editorconfig
//
// # Step Results
//
// [StepResult] records the outcome of a materialized file or an
// orchestrator step. Display numbering is the position in the result
// list plus one.
package models
