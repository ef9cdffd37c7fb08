package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/eddo81/wpkit/internal/defs"
	"github.com/eddo81/wpkit/internal/filesystem"
	"github.com/eddo81/wpkit/internal/naming"
)

// templateFuncMap is sprig's text function map plus the wpkit helpers.
var templateFuncMap = func() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	maps.Copy(funcs, template.FuncMap{
		// jsonEscape escapes a string for embedding in a JSON string value.
		// HTML characters are kept so "Name <email>" stays readable.
		"jsonEscape": func(s string) string {
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetEscapeHTML(false)
			if err := enc.Encode(s); err != nil {
				return s
			}
			b := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
			return string(b[1 : len(b)-1])
		},
		"dash":  naming.ToDashCase,
		"snake": naming.ToSnakeCase,
	})
	return funcs
}()

// unexpandedTokenPattern detects template actions left in rendered output.
var unexpandedTokenPattern = regexp.MustCompile(`\{\{-?\s*[.$]?[A-Za-z_][A-Za-z0-9_.]*\s*-?\}\}`)

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// RenderBytes parses the named template and executes it with data.
	// The output depends only on the template bytes and data.
	RenderBytes(source string, data any) ([]byte, error)

	// Render renders source and writes the result to dest, creating
	// parent directories as needed. dest must not exist yet.
	Render(source, dest string, data any) error
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	fsys fs.FS
	out  filesystem.FileSystem
}

// NewRenderer creates a Renderer that reads templates from fsys and
// writes through out.
func NewRenderer(fsys fs.FS, out filesystem.FileSystem) Renderer {
	return &renderer{fsys: fsys, out: out}
}

// RenderBytes parses and executes a template with strict mode (missingkey=error).
func (r *renderer) RenderBytes(source string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, source)
	if err != nil {
		return nil, &TemplateReadError{Source: source, Err: err}
	}

	tmpl, err := template.New(source).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, &RenderError{Source: source, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &RenderError{Source: source, Err: err}
	}

	result := buf.Bytes()
	if loc := unexpandedTokenPattern.Find(result); loc != nil {
		return nil, &RenderError{Source: source, Err: fmt.Errorf("%w: found %q", ErrUnexpandedToken, string(loc))}
	}

	return result, nil
}

// Render renders source and creates dest with the output.
func (r *renderer) Render(source, dest string, data any) error {
	content, err := r.RenderBytes(source, data)
	if err != nil {
		return err
	}
	return writeNewFile(r.out, dest, content)
}

// writeNewFile creates dest and its parent directories. An existing
// destination is never overwritten.
func writeNewFile(out filesystem.FileSystem, dest string, content []byte) error {
	if err := out.MkdirAll(filepath.Dir(dest), defs.DirPerm); err != nil {
		return &TemplateWriteError{Path: dest, Err: err}
	}
	if err := out.CreateFile(dest, content, filePerm(dest)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			err = ErrDestinationFileExists
		}
		return &TemplateWriteError{Path: dest, Err: err}
	}
	return nil
}

// filePerm returns the mode for a created file. Shell scripts are executable.
func filePerm(dest string) fs.FileMode {
	if strings.HasSuffix(dest, ".sh") {
		return defs.ExecPerm
	}
	return defs.FilePerm
}
