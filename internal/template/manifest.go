package template

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eddo81/wpkit/internal/defs"
	"github.com/eddo81/wpkit/pkg/models"
)

// EntryToken is replaced by the entrypoint name in the Dest of a
// per-entrypoint entry.
const EntryToken = "[entry]"

// Kind selects how a manifest entry is materialized.
type Kind string

const (
	// KindCopy copies the source bytes unchanged.
	KindCopy Kind = "copy"
	// KindRender renders the source as a text/template.
	KindRender Kind = "render"
)

// Entry is one row of the template manifest.
type Entry struct {
	Source        string               `yaml:"source"`
	Dest          string               `yaml:"dest"`
	Kind          Kind                 `yaml:"kind"`
	Requires      []models.FeatureFlag `yaml:"requires,omitempty"`
	PerEntrypoint bool                 `yaml:"per_entrypoint,omitempty"`
	Overrides     map[string]any       `yaml:"overrides,omitempty"`
}

// Manifest is the ordered, declarative description of a template tree.
type Manifest struct {
	Entries []Entry `yaml:"entries"`
}

// Select returns the entries whose required flags are all enabled,
// preserving manifest order.
func (m Manifest) Select(features models.FeatureSet) Manifest {
	out := Manifest{}
	for _, e := range m.Entries {
		if features.HasAll(e.Requires) {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

// Validate checks every entry and reports all problems at once.
func (m Manifest) Validate() error {
	var errs []error
	dests := make(map[string]int, len(m.Entries))

	for i, e := range m.Entries {
		fail := func(format string, args ...any) {
			errs = append(errs, fmt.Errorf("%w: entry %d (%s): %s", ErrInvalidManifest, i+1, e.Source, fmt.Sprintf(format, args...)))
		}

		if e.Source == "" {
			fail("source is empty")
		}
		if e.Dest == "" {
			fail("dest is empty")
		} else if err := validateDeployPath(".", e.Dest); err != nil {
			fail("%v", err)
		}
		if e.Kind != KindCopy && e.Kind != KindRender {
			fail("unknown kind %q", e.Kind)
		}
		for _, f := range e.Requires {
			if !f.IsValid() {
				fail("unknown feature %q", f)
			}
		}

		hasToken := strings.Contains(e.Dest, EntryToken)
		if e.PerEntrypoint && !hasToken {
			fail("per-entrypoint dest %q lacks %s", e.Dest, EntryToken)
		}
		if !e.PerEntrypoint && hasToken {
			fail("dest %q uses %s but the entry is not per-entrypoint", e.Dest, EntryToken)
		}

		if prev, ok := dests[e.Dest]; ok {
			fail("dest %q already used by entry %d", e.Dest, prev)
		}
		dests[e.Dest] = i + 1
	}

	return errors.Join(errs...)
}

// ParseManifest decodes a YAML manifest and validates it.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// LoadManifest reads manifest.yaml from the root of fsys, falling back to
// DefaultManifest when the tree does not carry one.
func LoadManifest(fsys fs.FS) (Manifest, error) {
	data, err := fs.ReadFile(fsys, defs.ManifestYAML)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultManifest(), nil
	}
	if err != nil {
		return Manifest{}, &TemplateReadError{Source: defs.ManifestYAML, Err: err}
	}
	return ParseManifest(data)
}

// WorkItem is one file to create, after feature selection and
// entrypoint expansion.
type WorkItem struct {
	Source     string
	Dest       string // slash path relative to the project root
	Kind       Kind
	Entrypoint string // set for per-entrypoint items
	Overrides  map[string]any
}

// Plan selects, expands and orders the manifest for cfg without touching
// the disk. Files are grouped by destination directory in the order each
// directory first appears; manifest order is kept within a directory.
func Plan(m Manifest, cfg models.ProjectConfig) ([]WorkItem, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var items []WorkItem
	for _, e := range m.Select(cfg.Features()).Entries {
		if !e.PerEntrypoint {
			items = append(items, WorkItem{Source: e.Source, Dest: path.Clean(e.Dest), Kind: e.Kind, Overrides: maps.Clone(e.Overrides)})
			continue
		}
		for _, ep := range cfg.Entrypoints() {
			items = append(items, WorkItem{
				Source:     e.Source,
				Dest:       path.Clean(strings.ReplaceAll(e.Dest, EntryToken, ep)),
				Kind:       e.Kind,
				Entrypoint: ep,
				Overrides:  maps.Clone(e.Overrides),
			})
		}
	}

	seen := make(map[string]bool, len(items))
	firstDir := make(map[string]int)
	for i, it := range items {
		if seen[it.Dest] {
			return nil, fmt.Errorf("%w: dest %q produced twice", ErrInvalidManifest, it.Dest)
		}
		seen[it.Dest] = true
		if _, ok := firstDir[path.Dir(it.Dest)]; !ok {
			firstDir[path.Dir(it.Dest)] = i
		}
	}

	ordered := make([]WorkItem, 0, len(items))
	for i, it := range items {
		if firstDir[path.Dir(it.Dest)] != i {
			continue
		}
		dir := path.Dir(it.Dest)
		for _, other := range items[i:] {
			if path.Dir(other.Dest) == dir {
				ordered = append(ordered, other)
			}
		}
	}
	return ordered, nil
}

// Directories returns every directory the items need below the project
// root, parents before children (by depth, then name).
func Directories(items []WorkItem) []string {
	set := make(map[string]bool)
	for _, it := range items {
		for dir := path.Dir(it.Dest); dir != "."; dir = path.Dir(dir) {
			set[dir] = true
		}
	}

	dirs := make([]string, 0, len(set))
	for d := range set {
		dirs = append(dirs, d)
	}
	slices.SortFunc(dirs, func(a, b string) int {
		if c := cmp.Compare(strings.Count(a, "/"), strings.Count(b, "/")); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return dirs
}

// DefaultManifest describes the embedded webpack 5 boilerplate.
func DefaultManifest() Manifest {
	tailwind := []models.FeatureFlag{models.FeatureTailwind}
	return Manifest{Entries: []Entry{
		{Source: "package.json.tmpl", Dest: "package.json", Kind: KindRender},
		{Source: "README.md.tmpl", Dest: "README.md", Kind: KindRender, Requires: []models.FeatureFlag{models.FeatureReadme}},
		{Source: "LICENSE.tmpl", Dest: "LICENSE", Kind: KindRender, Requires: []models.FeatureFlag{models.FeatureLicense}},
		{Source: "editorconfig", Dest: ".editorconfig", Kind: KindCopy, Requires: []models.FeatureFlag{models.FeatureEditorConfig}},
		{Source: "gitignore", Dest: ".gitignore", Kind: KindCopy},
		{Source: "eslintrc.js", Dest: ".eslintrc.js", Kind: KindCopy},
		{Source: "babelrc", Dest: ".babelrc", Kind: KindCopy},
		{Source: "postcss.config.js.tmpl", Dest: "postcss.config.js", Kind: KindRender},
		{Source: "src/index.html.tmpl", Dest: "src/index.html", Kind: KindRender},
		{Source: "src/tools/clean.js", Dest: "src/tools/clean.js", Kind: KindCopy},
		{Source: "src/tools/config/index.js", Dest: "src/tools/config/index.js", Kind: KindCopy},
		{Source: "src/tools/config/extensions/index.js", Dest: "src/tools/config/extensions/index.js", Kind: KindCopy},
		{Source: "src/tools/utils/resolve/index.js", Dest: "src/tools/utils/resolve/index.js", Kind: KindCopy},
		{Source: "src/tools/config/webpack/webpack.base.conf.js.tmpl", Dest: "src/tools/config/webpack/webpack.base.conf.js", Kind: KindRender},
		{Source: "src/tools/config/webpack/webpack.dev.conf.js", Dest: "src/tools/config/webpack/webpack.dev.conf.js", Kind: KindCopy},
		{Source: "src/tools/config/webpack/webpack.prod.conf.js", Dest: "src/tools/config/webpack/webpack.prod.conf.js", Kind: KindCopy},
		{Source: "src/tools/config/tailwind/tailwind.js", Dest: "src/tools/config/tailwind/tailwind.js", Kind: KindCopy, Requires: tailwind},
		{Source: "src/scripts/entry.js.tmpl", Dest: "src/scripts/" + EntryToken + ".js", Kind: KindRender, PerEntrypoint: true},
		{Source: "src/scripts/modules/index.js", Dest: "src/scripts/modules/index.js", Kind: KindCopy},
		{Source: "src/scripts/utils/checkselector.js", Dest: "src/scripts/utils/checkselector.js", Kind: KindCopy},
		{Source: "src/styles/tailwind.css", Dest: "src/styles/tailwind.css", Kind: KindCopy, Requires: tailwind},
		{Source: "src/styles/entry.css.tmpl", Dest: "src/styles/" + EntryToken + ".css", Kind: KindRender, PerEntrypoint: true},
	}}
}
