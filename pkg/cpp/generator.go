package cpp

import (
	"strings"

	"github.com/pseudomuto/cppgen/pkg/format"
	"github.com/pseudomuto/cppgen/pkg/stream"
	"github.com/pseudomuto/cppgen/pkg/utils"
)

// DefaultFileHeader is the first line of the file header comment written
// when Options.FileHeader is empty.
const DefaultFileHeader = "Generated by cppgen"

type (
	// Options control the generated C++ layout.
	Options struct {
		Formatter format.FormatterOptions

		// Comments enables file header, function and member comments.
		Comments bool

		// FileHeader replaces the default file header comment.
		FileHeader string

		// PragmaOnce writes "#pragma once" at the top of the file. It takes
		// precedence over IncludeGuards.
		PragmaOnce bool

		IncludeGuards      bool
		IncludeGuardPrefix string
	}

	// Generator writes C++ constructs through a format.Formatter.
	//
	// A Generator is not safe for concurrent use.
	Generator struct {
		formatter *format.Formatter
		options   Options
		guard     string
	}
)

// DefaultOptions returns options with comments and #pragma once enabled.
func DefaultOptions() Options {
	return Options{
		Formatter:  format.Defaults,
		Comments:   true,
		PragmaOnce: true,
	}
}

// New creates a Generator writing to out.
func New(out stream.Output, options Options) *Generator {
	return &Generator{
		formatter: format.New(out, options.Formatter),
		options:   options,
	}
}

// Formatter returns the underlying Formatter for writing free-form code.
func (g *Generator) Formatter() *format.Formatter {
	return g.formatter
}

// Err returns the Formatter's sticky error.
func (g *Generator) Err() error {
	return g.formatter.Err()
}

// Flush flushes the underlying Formatter.
func (g *Generator) Flush() error {
	return g.formatter.Flush()
}

// IncludeGuard returns the include guard macro for filename.
func (g *Generator) IncludeGuard(filename string) string {
	return utils.IncludeGuard(g.options.IncludeGuardPrefix, filename)
}

// BeginFile writes the file preamble: the header comment, #pragma once or
// the opening include guard, and the includes. Duplicate includes are
// written once.
func (g *Generator) BeginFile(filename string, includes []string) {
	f := g.formatter

	if g.options.Comments {
		if g.options.FileHeader != "" {
			f.AddComment(g.options.FileHeader)
		} else {
			f.AddComment(DefaultFileHeader)
			f.AddComment("File: " + filename)
		}
		f.EndLine()
	}

	switch {
	case g.options.PragmaOnce:
		f.AddLine("#pragma once")
		f.EndLine()
	case g.options.IncludeGuards:
		g.guard = g.IncludeGuard(filename)
		f.IfNDef(g.guard)
		f.Define(g.guard)
		f.EndLine()
	}

	seen := make(map[string]bool, len(includes))
	for _, include := range includes {
		include = strings.TrimSpace(include)
		if include == "" || seen[include] {
			continue
		}

		seen[include] = true
		f.Include(utils.QuoteInclude(include))
	}

	if len(seen) > 0 {
		f.EndLine()
	}
}

// EndFile closes the include guard opened by BeginFile, if any.
func (g *Generator) EndFile() {
	if g.guard == "" {
		return
	}

	g.formatter.AddLine("#endif // " + g.guard)
	g.guard = ""
}

// BeginNamespace opens a namespace.
func (g *Generator) BeginNamespace(name string) {
	g.formatter.Namespace(name)
}

// EndNamespace closes the innermost namespace.
func (g *Generator) EndNamespace() {
	g.formatter.EndNamespace()
}

// Class writes the class declaration followed by its implementation.
func (g *Generator) Class(c Class) {
	g.ClassDeclaration(c)
	g.formatter.EndLine()
	g.ClassImplementation(c)
}

// ClassDeclaration writes the class definition. Functions and members are
// grouped into public, protected and private sections, and sections without
// entries are left out.
func (g *Generator) ClassDeclaration(c Class) {
	f := g.formatter

	f.PrintLines(c.ForwardDeclarations)
	if len(c.ForwardDeclarations) > 0 {
		f.EndLine()
	}

	if g.options.Comments && c.Comment != "" {
		f.AddComment(c.Comment)
	}

	f.Class(c.Name, c.Inheritance())

	for _, access := range sections {
		var (
			functions []Function
			members   []Member
		)

		for _, fn := range c.Functions {
			if fn.AccessSpecifier() == access {
				functions = append(functions, fn)
			}
		}

		for _, m := range c.Members {
			if m.AccessSpecifier() == access {
				members = append(members, m)
			}
		}

		if len(functions) == 0 && len(members) == 0 {
			continue
		}

		switch access {
		case Public:
			f.Public()
		case Protected:
			f.Protected()
		default:
			f.Private()
		}

		for _, fn := range functions {
			g.FunctionDeclaration(fn)
		}

		for _, m := range members {
			g.member(m)
		}
	}

	f.PrintLines(c.Body)
	f.EndClass()
}

// ClassImplementation writes out-of-line implementations of the class
// functions that have a body and aren't pure virtual, separated by blank
// lines.
func (g *Generator) ClassImplementation(c Class) {
	first := true
	for _, fn := range c.Functions {
		if !fn.Implemented() {
			continue
		}

		if !first {
			g.formatter.EndLine()
		}

		first = false
		g.FunctionImplementation(fn, c.Name)
	}
}

// Function writes a declaration when inClass is set and an implementation
// otherwise.
func (g *Generator) Function(fn Function, inClass bool) {
	if inClass {
		g.FunctionDeclaration(fn)
		return
	}

	g.FunctionImplementation(fn, "")
}

// FunctionDeclaration writes the function's comment (when enabled) and its
// signature.
func (g *Generator) FunctionDeclaration(fn Function) {
	if g.options.Comments {
		g.formatter.AddComment(functionComment(fn))
	}

	g.formatter.AddLine(fn.Signature() + ";")
}

// FunctionImplementation writes the function definition, qualified with
// class when it's set. Functions without a body get a TODO comment.
func (g *Generator) FunctionImplementation(fn Function, class string) {
	f := g.formatter

	f.AddLine(fn.Definition(class))
	f.OpenBlockInternal("")

	if lines := utils.SplitLines(fn.Body); len(lines) > 0 {
		f.PrintLines(lines)
	} else {
		f.AddComment("TODO: Implement function body")
	}

	f.CloseBlock("")
}

// Global writes a variable definition preceded by its comment, if any.
func (g *Generator) Global(m Member) {
	if m.Comment != "" {
		g.formatter.AddComment(m.Comment)
	}

	g.formatter.AddLine(m.String())
}

// Enum writes a scoped enum.
func (g *Generator) Enum(name string, values []string) {
	g.formatter.Enum(name, values)
}

// Getter declares the accessor returned by GetterFor.
func (g *Generator) Getter(m Member) {
	g.FunctionDeclaration(GetterFor(m))
}

// Setter declares the mutator returned by SetterFor.
func (g *Generator) Setter(m Member) {
	g.FunctionDeclaration(SetterFor(m))
}

// GetterFor returns a const accessor for m, e.g. for "int count_":
//
//	const int& GetCount() const { return count_; }
//
// Members that are already const or references keep a single qualifier.
func GetterFor(m Member) Function {
	ret := m.Type
	ret.Const = true
	ret.Reference = true

	return Function{
		Name:       utils.AccessorName("Get", m.Name),
		ReturnType: ret.String(),
		Const:      true,
		Body:       "return " + m.Name + ";",
	}
}

// SetterFor returns a mutator for m, e.g. for "int count_":
//
//	void SetCount(int value) { count_ = value; }
func SetterFor(m Member) Function {
	return Function{
		Name:       utils.AccessorName("Set", m.Name),
		ReturnType: "void",
		Parameters: []Parameter{{Type: m.Type, Name: "value"}},
		Body:       m.Name + " = value;",
	}
}

func (g *Generator) member(m Member) {
	if g.options.Comments {
		comment := m.Comment
		if comment == "" {
			comment = m.Name + " - member variable"
		}
		g.formatter.AddComment(comment)
	}

	g.formatter.AddLine(m.String())
}

func functionComment(fn Function) string {
	if fn.Comment != "" {
		return fn.Comment
	}

	if len(fn.Parameters) == 0 {
		return fn.Name
	}

	names := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		names[i] = p.Name
	}

	return fn.Name + " - Parameters: " + strings.Join(names, ", ")
}
