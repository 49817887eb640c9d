package project

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/stream"
	"github.com/pseudomuto/cppgen/pkg/template"
	"gopkg.in/yaml.v3"
)

const (
	// Header files receive declarations
	Header FileType = "header"
	// Source files receive implementations
	Source FileType = "source"

	// DefaultFunctionAccess is the access specifier of functions that don't set one
	DefaultFunctionAccess = "public"
	// DefaultMemberAccess is the access specifier of members that don't set one
	DefaultMemberAccess = "private"

	// TimestampLayout is the layout of the TIMESTAMP variable
	TimestampLayout = "2006-01-02 15:04:05"
)

// ErrInvalidDescriptor is returned when a descriptor fails validation.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

type (
	// FileType selects what is generated for a file.
	FileType string

	// Descriptor describes a project to generate: its files and the variables
	// and code templates available while generating them.
	Descriptor struct {
		Name           string            `json:"name" yaml:"name"`
		Version        string            `json:"version,omitempty" yaml:"version,omitempty"`
		OutputDir      string            `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
		CommonIncludes []string          `json:"common_includes,omitempty" yaml:"common_includes,omitempty"`
		Files          []*File           `json:"files" yaml:"files"`
		Vars           map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
		CodeTemplates  map[string]string `json:"code_templates,omitempty" yaml:"code_templates,omitempty"`
	}

	// File is a single generated output file.
	File struct {
		Filename       string            `json:"filename" yaml:"filename"`
		Type           FileType          `json:"type,omitempty" yaml:"type,omitempty"`
		Includes       []string          `json:"includes,omitempty" yaml:"includes,omitempty"`
		Namespaces     []string          `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
		Classes        []*Class          `json:"classes,omitempty" yaml:"classes,omitempty"`
		Functions      []*Function       `json:"functions,omitempty" yaml:"functions,omitempty"`
		Globals        []*Member         `json:"globals,omitempty" yaml:"globals,omitempty"`
		Templates      map[string]string `json:"templates,omitempty" yaml:"templates,omitempty"`
		CopyFiles      []string          `json:"copy_files,omitempty" yaml:"copy_files,omitempty"`
		InsertSnippets []string          `json:"insert_snippets,omitempty" yaml:"insert_snippets,omitempty"`
	}

	// Class is a class declared (header) or implemented (source) in a file.
	Class struct {
		Name        string            `json:"name" yaml:"name"`
		BaseClasses []string          `json:"base_classes,omitempty" yaml:"base_classes,omitempty"`
		Templates   []string          `json:"templates,omitempty" yaml:"templates,omitempty"`
		Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
		Members     []*Member         `json:"members,omitempty" yaml:"members,omitempty"`
		Functions   []*Function       `json:"functions,omitempty" yaml:"functions,omitempty"`
	}

	// Function is a free function or a member function.
	Function struct {
		Name        string      `json:"name" yaml:"name"`
		ReturnType  string      `json:"return_type,omitempty" yaml:"return_type,omitempty"`
		Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
		Body        string      `json:"body,omitempty" yaml:"body,omitempty"`
		Access      string      `json:"access,omitempty" yaml:"access,omitempty"`
		Virtual     bool        `json:"virtual,omitempty" yaml:"virtual,omitempty"`
		PureVirtual bool        `json:"pure_virtual,omitempty" yaml:"pure_virtual,omitempty"`
		Const       bool        `json:"const,omitempty" yaml:"const,omitempty"`
		Static      bool        `json:"static,omitempty" yaml:"static,omitempty"`
		Templates   []string    `json:"templates,omitempty" yaml:"templates,omitempty"`
	}

	// Member is a data member of a class, or a global variable of a file.
	Member struct {
		Name        string `json:"name" yaml:"name"`
		Type        string `json:"type" yaml:"type"`
		Initializer string `json:"initializer,omitempty" yaml:"initializer,omitempty"`
		Access      string `json:"access,omitempty" yaml:"access,omitempty"`
		Comment     string `json:"comment,omitempty" yaml:"comment,omitempty"`
	}

	// Parameter is a function parameter.
	Parameter struct {
		Type    string `json:"type" yaml:"type"`
		Name    string `json:"name" yaml:"name"`
		Default string `json:"default,omitempty" yaml:"default,omitempty"`
	}
)

// LoadDescriptor parses and validates a project descriptor.
//
// The descriptor may be JSON or YAML; content starting with '{' is treated as
// JSON. When the descriptor defines variables, every ${NAME} placeholder in
// the raw text is replaced with its value and the result decoded again, so
// variables can be used anywhere in the descriptor.
//
// Example:
//
//	d, err := project.LoadDescriptor(strings.NewReader(`{
//		"name": "demo",
//		"variables": {"NS": "demo"},
//		"files": [{"filename": "demo.h", "namespaces": ["${NS}"]}]
//	}`))
func LoadDescriptor(r io.Reader) (*Descriptor, error) {
	raw, err := stream.ReadAll(stream.NewReaderInput(r, stream.DefaultBufferSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read descriptor")
	}

	d, err := decodeDescriptor(raw)
	if err != nil {
		return nil, err
	}

	if len(d.Vars) > 0 {
		substituted, err := template.New().Substitute(raw, d.Vars)
		if err != nil {
			return nil, errors.Wrap(err, "failed to substitute descriptor variables")
		}

		if d, err = decodeDescriptor(substituted); err != nil {
			return nil, errors.Wrap(err, "failed to decode descriptor after substitution")
		}
	}

	d.normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// LoadDescriptorFile loads the descriptor at path.
func LoadDescriptorFile(path string) (*Descriptor, error) {
	in, err := stream.NewFileInput(path, stream.DefaultBufferSize)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	d, err := LoadDescriptor(stream.Reader(in))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load descriptor: %s", path)
	}

	return d, nil
}

func decodeDescriptor(raw string) (*Descriptor, error) {
	var d Descriptor

	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal JSON descriptor")
		}
		return &d, nil
	}

	if err := yaml.Unmarshal([]byte(raw), &d); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal YAML descriptor")
	}

	return &d, nil
}

// Validate checks that the descriptor names the project and at least one
// file, and that every filename is non-empty and stays inside the output
// directory.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return errors.Wrap(ErrInvalidDescriptor, "project name is required")
	}

	if len(d.Files) == 0 {
		return errors.Wrap(ErrInvalidDescriptor, "at least one file must be specified")
	}

	for _, f := range d.Files {
		if f == nil || f.Filename == "" {
			return errors.Wrap(ErrInvalidDescriptor, "filename cannot be empty")
		}

		if strings.Contains(f.Filename, "..") {
			return errors.Wrapf(ErrInvalidDescriptor, "invalid filename: %s", f.Filename)
		}

		if t := f.FileType(); t != Header && t != Source {
			return errors.Wrapf(ErrInvalidDescriptor, "invalid file type %q for %s", t, f.Filename)
		}
	}

	return nil
}

// Variables returns the user variables plus PROJECT_NAME, PROJECT_VERSION,
// OUTPUT_DIR and TIMESTAMP (the current local time).
func (d *Descriptor) Variables() map[string]string {
	return d.VariablesAt(time.Now())
}

// VariablesAt is Variables with TIMESTAMP taken from t.
func (d *Descriptor) VariablesAt(t time.Time) map[string]string {
	vars := make(map[string]string, len(d.Vars)+4)
	for k, v := range d.Vars {
		vars[k] = v
	}

	vars["PROJECT_NAME"] = d.Name
	vars["PROJECT_VERSION"] = d.Version
	vars["OUTPUT_DIR"] = d.OutputDir
	vars["TIMESTAMP"] = t.Format(TimestampLayout)
	return vars
}

// WriteJSON writes the descriptor as indented JSON.
func (d *Descriptor) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(d); err != nil {
		return errors.Wrap(err, "failed to encode descriptor")
	}

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "failed to write descriptor")
}

// normalize applies defaults and drops incomplete parameters.
func (d *Descriptor) normalize() {
	for _, f := range d.Files {
		if f == nil {
			continue
		}

		for _, fn := range f.Functions {
			fn.normalize()
		}

		for _, c := range f.Classes {
			for _, fn := range c.Functions {
				fn.normalize()
			}
			for _, m := range c.Members {
				if m.Access == "" {
					m.Access = DefaultMemberAccess
				}
			}
		}
	}
}

func (fn *Function) normalize() {
	if fn.Access == "" {
		fn.Access = DefaultFunctionAccess
	}

	params := fn.Parameters[:0]
	for _, p := range fn.Parameters {
		if p.Type != "" && p.Name != "" {
			params = append(params, p)
		}
	}
	fn.Parameters = params
}

// FileType returns the file's type, inferred from the extension when unset.
func (f *File) FileType() FileType {
	if f.Type != "" {
		return f.Type
	}

	switch strings.ToLower(filepath.Ext(f.Filename)) {
	case ".h", ".hh", ".hpp", ".hxx", ".inc":
		return Header
	default:
		return Source
	}
}

// IsHeader reports whether declarations are generated for the file.
func (f *File) IsHeader() bool {
	return f.FileType() == Header
}
