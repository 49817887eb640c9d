package cpp

import (
	"strings"
)

// Access specifiers.
const (
	Public    = "public"
	Protected = "protected"
	Private   = "private"
)

// sections lists access specifiers in the order class sections are written.
var sections = []string{Public, Protected, Private}

type (
	// Type is a C++ type reference.
	Type struct {
		Name      string
		Const     bool
		Pointer   bool
		Reference bool
	}

	// Parameter is a function parameter with an optional default value.
	Parameter struct {
		Type    Type
		Name    string
		Default string
	}

	// Function is a free or member function. An empty ReturnType is omitted
	// from the signature, which allows constructors and destructors.
	Function struct {
		Name        string
		ReturnType  string
		Parameters  []Parameter
		Body        string
		Access      string
		Virtual     bool
		PureVirtual bool
		Const       bool
		Static      bool

		// Comment replaces the generated declaration comment when set.
		Comment string
	}

	// Member is a data member of a class.
	Member struct {
		Type        Type
		Name        string
		Initializer string
		Access      string
		Comment     string
	}

	// Class is a class definition.
	Class struct {
		Name                string
		BaseClasses         []string
		Members             []Member
		Functions           []Function
		ForwardDeclarations []string

		// Comment is written above the class when comments are enabled.
		Comment string

		// Body lines are written verbatim at the end of the class body.
		Body []string
	}
)

// String renders the type, e.g. "const Widget*&".
func (t Type) String() string {
	var sb strings.Builder
	if t.Const {
		sb.WriteString("const ")
	}

	sb.WriteString(t.Name)
	if t.Pointer {
		sb.WriteByte('*')
	}
	if t.Reference {
		sb.WriteByte('&')
	}

	return sb.String()
}

// String renders the parameter, e.g. "int count = 0".
func (p Parameter) String() string {
	s := p.Type.String() + " " + p.Name
	if p.Default != "" {
		s += " = " + p.Default
	}
	return s
}

// Signature renders the declaration signature, without a trailing ';'.
//
//	virtual std::string Name(int id = 0) const = 0
func (fn Function) Signature() string {
	var sb strings.Builder
	if fn.Virtual || fn.PureVirtual {
		sb.WriteString("virtual ")
	}
	if fn.Static {
		sb.WriteString("static ")
	}

	sb.WriteString(fn.head(fn.Name, true))

	if fn.PureVirtual {
		sb.WriteString(" = 0")
	}

	return sb.String()
}

// Definition renders the signature used by an out-of-line implementation.
// The name is qualified with class (when set), and specifiers and default
// values that are only valid on declarations are left out.
//
//	std::string Widget::Name(int id) const
func (fn Function) Definition(class string) string {
	name := fn.Name
	if class != "" {
		name = class + "::" + name
	}

	return fn.head(name, false)
}

// AccessSpecifier returns the function's access, public by default.
func (fn Function) AccessSpecifier() string {
	return accessOr(fn.Access, Public)
}

// Implemented reports whether an implementation is written for the function
// by ClassImplementation.
func (fn Function) Implemented() bool {
	return fn.Body != "" && !fn.PureVirtual
}

func (fn Function) head(name string, defaults bool) string {
	var sb strings.Builder
	if fn.ReturnType != "" {
		sb.WriteString(fn.ReturnType)
		sb.WriteByte(' ')
	}

	sb.WriteString(name)
	sb.WriteByte('(')
	for i, p := range fn.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}

		if !defaults {
			p.Default = ""
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')

	if fn.Const {
		sb.WriteString(" const")
	}

	return sb.String()
}

// String renders the member declaration, e.g. "int count_ = 0;".
func (m Member) String() string {
	s := m.Type.String() + " " + m.Name
	if m.Initializer != "" {
		s += " = " + m.Initializer
	}
	return s + ";"
}

// AccessSpecifier returns the member's access, private by default.
func (m Member) AccessSpecifier() string {
	return accessOr(m.Access, Private)
}

// Inheritance renders the base class list. Bases without an explicit access
// specifier are inherited publicly.
//
//	public Base, protected Mixin
func (c Class) Inheritance() string {
	bases := make([]string, 0, len(c.BaseClasses))
	for _, base := range c.BaseClasses {
		base = strings.TrimSpace(base)
		if base == "" {
			continue
		}

		if !hasAccessPrefix(base) {
			base = Public + " " + base
		}
		bases = append(bases, base)
	}

	return strings.Join(bases, ", ")
}

func hasAccessPrefix(base string) bool {
	for _, access := range sections {
		if strings.HasPrefix(base, access+" ") {
			return true
		}
	}
	return false
}

func accessOr(access, fallback string) string {
	switch access {
	case Public, Protected, Private:
		return access
	default:
		return fallback
	}
}
