package format

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/stream"
)

var (
	// ErrBlockMismatch is recorded in strict mode when a close operation does
	// not match the innermost open block.
	ErrBlockMismatch = errors.New("block mismatch")

	// ErrUnclosedBlock is returned by Flush in strict mode when blocks are
	// still open.
	ErrUnclosedBlock = errors.New("unclosed block")
)

// Formatter writes indented, block-structured text to a stream.Output.
//
// Formatting methods return the Formatter so calls can be chained. Errors are
// sticky: the first failure is kept and returned by Err and Flush. After an
// output failure the Formatter keeps tracking structure but stops writing.
//
// A Formatter is not safe for concurrent use.
type Formatter struct {
	out         stream.Output
	options     FormatterOptions
	logger      *slog.Logger
	level       int
	startOfLine bool
	stack       []Block
	err         error
	broken      bool
}

// New creates a Formatter writing to out.
func New(out stream.Output, options FormatterOptions) *Formatter {
	if options.IndentStyle == 0 {
		options.IndentStyle = Defaults.IndentStyle
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Formatter{
		out:         out,
		options:     options,
		logger:      logger,
		startOfLine: true,
	}
}

// Print writes text, preceded by the current indent when at the start of a
// line. Empty text is ignored.
func (f *Formatter) Print(text string) *Formatter {
	if text == "" {
		return f
	}

	if f.startOfLine {
		f.write(f.CurrentIndent())
		f.startOfLine = false
	}

	f.write(text)
	return f
}

// Printf prints the formatted text.
func (f *Formatter) Printf(format string, args ...any) *Formatter {
	return f.Print(fmt.Sprintf(format, args...))
}

// PrintLines adds each of lines as its own line.
func (f *Formatter) PrintLines(lines []string) *Formatter {
	for _, line := range lines {
		f.AddLine(line)
	}
	return f
}

// EndLine terminates the current line.
func (f *Formatter) EndLine() *Formatter {
	f.write("\n")
	f.startOfLine = true
	return f
}

// AddLine prints line (if any) and terminates it.
func (f *Formatter) AddLine(line string) *Formatter {
	if line != "" {
		f.Print(line)
	}
	return f.EndLine()
}

// AddComment writes a "//" comment, or a "/* */" block indented one level
// deeper when comment spans several lines.
func (f *Formatter) AddComment(comment string) *Formatter {
	if !strings.Contains(comment, "\n") {
		return f.Print("// ").Print(comment).EndLine()
	}

	f.AddLine("/*")
	f.Indent()
	f.PrintLines(strings.Split(comment, "\n"))
	f.Outdent()
	return f.AddLine("*/")
}

// Indent increases the indent level by one.
func (f *Formatter) Indent() *Formatter {
	f.level++
	return f
}

// Outdent decreases the indent level by one, stopping at zero.
func (f *Formatter) Outdent() *Formatter {
	if f.level > 0 {
		f.level--
	}
	return f
}

// SetIndentLevel sets the indent level, clamped at zero.
func (f *Formatter) SetIndentLevel(level int) *Formatter {
	f.level = max(0, level)
	return f
}

// OpenBlockInternal writes prefix (if any) and, with braces enabled, an
// opening brace line followed by an indent.
func (f *Formatter) OpenBlockInternal(prefix string) {
	if prefix != "" {
		f.AddLine(prefix)
	}

	if f.options.Braces {
		f.AddLine("{")
		f.Indent()
	}
}

// CloseBlock outdents and writes a closing brace followed by suffix. Without
// braces only suffix is written on its own line.
func (f *Formatter) CloseBlock(suffix string) {
	if f.options.Braces {
		f.Outdent()
		f.AddLine("}" + suffix)
		return
	}

	f.AddLine(suffix)
}

// OpenBlock opens a block like OpenBlockInternal and indents once more. The
// returned Scope undoes both when closed:
//
//	defer f.OpenBlock("void run()").Close()
func (f *Formatter) OpenBlock(prefix string) *Scope {
	f.OpenBlockInternal(prefix)
	f.Indent()
	return &Scope{formatter: f}
}

// If opens a conditional.
func (f *Formatter) If(condition string) *Formatter {
	f.AddLine("if (" + condition + ")")
	f.push(IfBlock{Condition: condition})
	f.OpenBlockInternal("")
	return f
}

// ElseIf closes the current if or else branch and opens another conditional
// branch on the closing line.
func (f *Formatter) ElseIf(condition string) *Formatter {
	switch f.Top().(type) {
	case IfBlock, ElseBlock:
		f.CloseBlock(" else if (" + condition + ")")
		f.replaceTop(IfBlock{Condition: condition})
		f.OpenBlockInternal("")
	default:
		f.mismatch("ElseIf")
	}
	return f
}

// Else closes the current if or else branch and opens an else branch. The
// condition of the branch it replaces is kept.
func (f *Formatter) Else() *Formatter {
	var next ElseBlock
	switch top := f.Top().(type) {
	case IfBlock:
		next = ElseBlock(top)
	case ElseBlock:
		next = top
	default:
		f.mismatch("Else")
		return f
	}

	f.CloseBlock(" else")
	f.replaceTop(next)
	f.OpenBlockInternal("")
	return f
}

// EndIf closes the current if or else branch.
func (f *Formatter) EndIf() *Formatter {
	switch f.Top().(type) {
	case IfBlock, ElseBlock:
		f.CloseBlock("")
		f.pop()
	default:
		f.mismatch("EndIf")
	}
	return f
}

// For opens a for loop.
func (f *Formatter) For(header string) *Formatter {
	f.AddLine("for (" + header + ")")
	f.push(ForBlock{Header: header})
	f.OpenBlockInternal("")
	return f
}

// While opens a while loop.
func (f *Formatter) While(condition string) *Formatter {
	f.AddLine("while (" + condition + ")")
	f.push(WhileBlock{Condition: condition})
	f.OpenBlockInternal("")
	return f
}

// EndLoop closes the current for or while loop.
func (f *Formatter) EndLoop() *Formatter {
	switch f.Top().(type) {
	case ForBlock, WhileBlock:
		f.CloseBlock("")
		f.pop()
	default:
		f.mismatch("EndLoop")
	}
	return f
}

// Class opens a class definition. inheritance may be empty.
func (f *Formatter) Class(name, inheritance string) *Formatter {
	f.AddLine(typeHead("class", name, inheritance))
	f.push(ClassBlock{Name: name})
	f.OpenBlockInternal("")
	return f
}

// Struct opens a struct definition. inheritance may be empty.
func (f *Formatter) Struct(name, inheritance string) *Formatter {
	f.AddLine(typeHead("struct", name, inheritance))
	f.push(StructBlock{Name: name})
	f.OpenBlockInternal("")
	return f
}

// EndClass closes the current class or struct with "};".
func (f *Formatter) EndClass() *Formatter {
	switch f.Top().(type) {
	case ClassBlock, StructBlock:
		f.CloseBlock(";")
		f.pop()
	default:
		f.mismatch("EndClass")
	}
	return f
}

// Namespace opens a namespace. The brace is always emitted on the namespace
// line regardless of the Braces option.
func (f *Formatter) Namespace(name string) *Formatter {
	f.AddLine("namespace " + name + " {")
	f.push(NamespaceBlock{Name: name})
	return f.Indent()
}

// EndNamespace closes the current namespace with a trailing name comment.
func (f *Formatter) EndNamespace() *Formatter {
	switch top := f.Top().(type) {
	case NamespaceBlock:
		f.Outdent()
		f.AddLine("} // namespace " + top.Name)
		f.pop()
	default:
		f.mismatch("EndNamespace")
	}
	return f
}

// Enum writes a complete enum definition, one value per line. The enum is
// scoped ("enum class") unless name already starts with "class " or
// "struct ".
func (f *Formatter) Enum(name string, values []string) *Formatter {
	head := "enum class " + name
	if strings.HasPrefix(name, "class ") || strings.HasPrefix(name, "struct ") {
		head = "enum " + name
	}

	f.OpenBlockInternal(head)
	for i, value := range values {
		if i < len(values)-1 {
			value += ","
		}
		f.AddLine(value)
	}
	f.CloseBlock(";")
	return f
}

// Public writes a "public:" access label one level out.
func (f *Formatter) Public() *Formatter { return f.accessLabel("public") }

// Private writes a "private:" access label one level out.
func (f *Formatter) Private() *Formatter { return f.accessLabel("private") }

// Protected writes a "protected:" access label one level out.
func (f *Formatter) Protected() *Formatter { return f.accessLabel("protected") }

// Include writes an #include directive. header must carry its own quotes or
// angle brackets.
func (f *Formatter) Include(header string) *Formatter {
	return f.AddLine("#include " + header)
}

// Define writes a #define directive.
func (f *Formatter) Define(macro string) *Formatter {
	return f.AddLine("#define " + macro)
}

// IfDef writes an #ifdef directive.
func (f *Formatter) IfDef(macro string) *Formatter {
	return f.AddLine("#ifdef " + macro)
}

// IfNDef writes an #ifndef directive.
func (f *Formatter) IfNDef(macro string) *Formatter {
	return f.AddLine("#ifndef " + macro)
}

// EndIfDef writes an #endif directive.
func (f *Formatter) EndIfDef() *Formatter {
	return f.AddLine("#endif")
}

// CurrentIndent returns the indent text for the current level.
func (f *Formatter) CurrentIndent() string {
	return f.options.IndentStyle.indent(f.level)
}

// IndentLevel returns the current indent level.
func (f *Formatter) IndentLevel() int {
	return f.level
}

// Depth returns the number of open blocks.
func (f *Formatter) Depth() int {
	return len(f.stack)
}

// Top returns the innermost open block, or nil when none is open.
func (f *Formatter) Top() Block {
	if len(f.stack) == 0 {
		return nil
	}
	return f.stack[len(f.stack)-1]
}

// Err returns the first output failure or, in strict mode, the first usage
// error.
func (f *Formatter) Err() error {
	return f.err
}

// Flush flushes the output. In strict mode blocks that are still open are
// reported as ErrUnclosedBlock.
func (f *Formatter) Flush() error {
	if !f.broken {
		if err := f.out.Flush(); err != nil {
			f.fail(errors.Wrap(err, "failed to flush output"))
		}
	}

	if f.options.Strict && len(f.stack) > 0 {
		f.setErr(errors.Wrapf(ErrUnclosedBlock, "innermost is %s", describe(f.Top())))
	}

	return f.err
}

func (f *Formatter) accessLabel(label string) *Formatter {
	return f.Outdent().AddLine(label + ":").Indent()
}

func (f *Formatter) push(b Block) {
	f.stack = append(f.stack, b)
}

func (f *Formatter) pop() {
	f.stack = f.stack[:len(f.stack)-1]
}

func (f *Formatter) replaceTop(b Block) {
	f.stack[len(f.stack)-1] = b
}

func (f *Formatter) mismatch(op string) {
	if f.options.Strict {
		f.setErr(errors.Wrapf(ErrBlockMismatch, "%s with %s open", op, describe(f.Top())))
		return
	}

	f.logger.Debug("Ignoring unbalanced block operation", "op", op, "top", describe(f.Top()))
}

func (f *Formatter) write(s string) {
	if f.broken || s == "" {
		return
	}

	if err := stream.WriteString(f.out, s); err != nil {
		f.fail(errors.Wrap(err, "failed to write output"))
	}
}

func (f *Formatter) fail(err error) {
	f.broken = true
	f.setErr(err)
}

func (f *Formatter) setErr(err error) {
	if f.err == nil {
		f.err = err
	}
}

func typeHead(keyword, name, inheritance string) string {
	head := keyword + " " + name
	if inheritance != "" {
		head += " : " + inheritance
	}
	return head
}

// Scope closes a block opened by OpenBlock.
type Scope struct {
	formatter *Formatter
	closed    bool
}

// Close outdents and closes the block. Only the first call has an effect. It
// returns the Formatter's sticky error.
func (s *Scope) Close() error {
	if s == nil || s.formatter == nil {
		return nil
	}

	if !s.closed {
		s.closed = true
		s.formatter.Outdent()
		s.formatter.CloseBlock("")
	}

	return s.formatter.Err()
}
