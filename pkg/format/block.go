package format

type (
	// Block describes one construct open on a Formatter's block stack.
	Block interface {
		// Kind names the construct, e.g. "if" or "namespace".
		Kind() string
		// Label is the condition, loop header or name the block was opened with.
		Label() string
	}

	// IfBlock is an open if or else-if branch.
	IfBlock struct{ Condition string }

	// ElseBlock is an open else branch. Condition is the condition of the
	// branch it follows.
	ElseBlock struct{ Condition string }

	// ForBlock is an open for loop.
	ForBlock struct{ Header string }

	// WhileBlock is an open while loop.
	WhileBlock struct{ Condition string }

	// ClassBlock is an open class definition.
	ClassBlock struct{ Name string }

	// StructBlock is an open struct definition.
	StructBlock struct{ Name string }

	// NamespaceBlock is an open namespace.
	NamespaceBlock struct{ Name string }
)

func (IfBlock) Kind() string        { return "if" }
func (ElseBlock) Kind() string      { return "else" }
func (ForBlock) Kind() string       { return "for" }
func (WhileBlock) Kind() string     { return "while" }
func (ClassBlock) Kind() string     { return "class" }
func (StructBlock) Kind() string    { return "struct" }
func (NamespaceBlock) Kind() string { return "namespace" }

func (b IfBlock) Label() string        { return b.Condition }
func (b ElseBlock) Label() string      { return b.Condition }
func (b ForBlock) Label() string       { return b.Header }
func (b WhileBlock) Label() string     { return b.Condition }
func (b ClassBlock) Label() string     { return b.Name }
func (b StructBlock) Label() string    { return b.Name }
func (b NamespaceBlock) Label() string { return b.Name }

func describe(b Block) string {
	if b == nil {
		return "none"
	}
	return b.Kind() + " " + b.Label()
}
