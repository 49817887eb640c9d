package template

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pseudomuto/cppgen/pkg/stream"
)

// LibrarySeparator separates the library name from the component path in a
// code reference such as "core::logging.h".
const LibrarySeparator = "::"

// Engine expands ${NAME} placeholders and @include(REF) directives.
//
// Placeholders are replaced from the engine's variables; unknown names are
// left untouched. Includes are resolved with Resolve and expand to the empty
// string when nothing matches.
type Engine struct {
	variables map[string]string
	templates map[string]string
	libraries map[string]string
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{
		variables: make(map[string]string),
		templates: make(map[string]string),
		libraries: make(map[string]string),
	}
}

// Clone returns a copy of the engine that can be changed without affecting e.
func (e *Engine) Clone() *Engine {
	return &Engine{
		variables: maps.Clone(e.variables),
		templates: maps.Clone(e.templates),
		libraries: maps.Clone(e.libraries),
	}
}

// SetVariable sets the value substituted for ${name}.
func (e *Engine) SetVariable(name, value string) {
	e.variables[name] = value
}

// SetVariables sets every variable in vars.
func (e *Engine) SetVariables(vars map[string]string) {
	maps.Copy(e.variables, vars)
}

// Variable returns the value of a variable.
func (e *Engine) Variable(name string) (string, bool) {
	v, ok := e.variables[name]
	return v, ok
}

// RegisterTemplate adds (or replaces) a named code template.
func (e *Engine) RegisterTemplate(name, content string) {
	e.templates[name] = content
}

// HasTemplate reports whether a template named name is registered.
func (e *Engine) HasTemplate(name string) bool {
	_, ok := e.templates[name]
	return ok
}

// Templates returns the names of all registered templates, sorted.
func (e *Engine) Templates() []string {
	return slices.Sorted(maps.Keys(e.templates))
}

// AddLibrary registers a code library rooted at path.
func (e *Engine) AddLibrary(name, path string) {
	e.libraries[name] = path
}

// Expand resolves every @include in text and substitutes variables in the
// result.
func (e *Engine) Expand(text string) (string, error) {
	segments, err := parse(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, seg := range segments {
		switch {
		case seg.Var != nil:
			sb.WriteString(e.lookup(*seg.Var))
		case seg.Include != nil:
			resolved, err := e.Include(*seg.Include)
			if err != nil {
				return "", err
			}
			sb.WriteString(resolved)
		default:
			sb.WriteString(seg.String())
		}
	}

	return sb.String(), nil
}

// Include resolves ref and substitutes the engine's variables in the result,
// exactly as an @include(ref) directive is expanded.
func (e *Engine) Include(ref string) (string, error) {
	resolved, _ := e.Resolve(ref)
	return e.substitute(resolved, nil)
}

// Resolve returns the code a reference points at. "lib::component" reads
// component from the library's directory; anything else, including a library
// reference that cannot be read, is looked up as a template. The second
// result reports whether the reference matched anything.
func (e *Engine) Resolve(ref string) (string, bool) {
	if lib, component, ok := strings.Cut(ref, LibrarySeparator); ok {
		if root, ok := e.libraries[lib]; ok {
			content, err := stream.ReadFile(filepath.Join(root, component))
			if err == nil {
				return content, true
			}
		}
	}

	if _, ok := e.templates[ref]; !ok {
		return "", false
	}

	content, err := e.ApplyTemplate(ref, nil)
	return content, err == nil
}

// ApplyTemplate returns the named template with the engine's variables and
// then vars substituted. An unknown template yields the empty string.
func (e *Engine) ApplyTemplate(name string, vars map[string]string) (string, error) {
	content, ok := e.templates[name]
	if !ok {
		return "", nil
	}

	content, err := e.substitute(content, nil)
	if err != nil {
		return "", err
	}

	if len(vars) == 0 {
		return content, nil
	}

	return e.substitute(content, vars)
}

// Substitute replaces placeholders in text from vars only. Includes and
// unknown placeholders are left untouched.
func (e *Engine) Substitute(text string, vars map[string]string) (string, error) {
	return substituteWith(text, func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	})
}

// substitute replaces placeholders from vars when given, otherwise from the
// engine's variables.
func (e *Engine) substitute(text string, vars map[string]string) (string, error) {
	if vars != nil {
		return e.Substitute(text, vars)
	}

	return substituteWith(text, func(name string) (string, bool) {
		v, ok := e.variables[name]
		return v, ok
	})
}

func (e *Engine) lookup(name string) string {
	if v, ok := e.variables[name]; ok {
		return v
	}
	return "${" + name + "}"
}

func substituteWith(text string, lookup func(string) (string, bool)) (string, error) {
	segments, err := parse(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, seg := range segments {
		if seg.Var != nil {
			if v, ok := lookup(*seg.Var); ok {
				sb.WriteString(v)
				continue
			}
		}
		sb.WriteString(seg.String())
	}

	return sb.String(), nil
}
