package format_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/cppgen/pkg/format"
	"github.com/pseudomuto/cppgen/pkg/stream"
	"github.com/stretchr/testify/require"
)

func newFormatter(options FormatterOptions) (*Formatter, *stream.BufferOutput) {
	out := stream.NewBufferOutput(nil)
	return New(out, options), out
}

func TestFormatter_Print(t *testing.T) {
	t.Run("indent only at start of line", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Indent().Print("int").Print(" x").Print(";").EndLine()
		f.Print("").Print("y();").EndLine()

		require.Equal(t, "  int x;\n  y();\n", out.String())
	})

	t.Run("empty text is a no-op", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Indent().Print("")
		require.Empty(t, out.String())

		f.EndLine()
		require.Equal(t, "\n", out.String())
	})

	t.Run("printf", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Printf("int %s = %d;", "answer", 42).EndLine()
		require.Equal(t, "int answer = 42;\n", out.String())
	})

	t.Run("print lines", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Indent().PrintLines([]string{"a();", "", "b();"})
		require.Equal(t, "  a();\n\n  b();\n", out.String())
	})
}

func TestFormatter_Comments(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Indent().AddComment("increments the counter")
		require.Equal(t, "  // increments the counter\n", out.String())
	})

	t.Run("multi line", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.AddComment("first\nsecond")
		require.Equal(t, "/*\n  first\n  second\n*/\n", out.String())
		require.Equal(t, 0, f.IndentLevel())
	})
}

func TestFormatter_Indentation(t *testing.T) {
	tests := []struct {
		style    IndentStyle
		expected string
	}{
		{Spaces2, "    "},
		{Spaces4, "        "},
		{Tabs, "\t\t"},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			f, out := newFormatter(FormatterOptions{IndentStyle: tt.style, Braces: true})
			f.Indent().Indent()
			require.Equal(t, tt.expected, f.CurrentIndent())

			f.AddLine("x;")
			require.Equal(t, tt.expected+"x;\n", out.String())
		})
	}

	t.Run("outdent clamps at zero", func(t *testing.T) {
		f, _ := newFormatter(Defaults)
		f.Outdent().Outdent()
		require.Equal(t, 0, f.IndentLevel())
		require.Empty(t, f.CurrentIndent())

		f.SetIndentLevel(-3)
		require.Equal(t, 0, f.IndentLevel())

		f.SetIndentLevel(3)
		require.Equal(t, 3, f.IndentLevel())
	})

	t.Run("zero style uses the default", func(t *testing.T) {
		f, _ := newFormatter(FormatterOptions{})
		f.Indent()
		require.Equal(t, "  ", f.CurrentIndent())
	})
}

func TestFormatter_Blocks(t *testing.T) {
	t.Run("block balance", func(t *testing.T) {
		f, _ := newFormatter(Defaults)
		f.Namespace("a").Namespace("b")
		f.Class("C", "")
		f.If("x").For(";;").While("y").Struct("S", "")

		require.Equal(t, 7, f.Depth())
		require.Equal(t, StructBlock{Name: "S"}, f.Top())

		f.EndClass().EndLoop().EndLoop().EndIf().EndClass().EndNamespace().EndNamespace()
		require.Equal(t, 0, f.Depth())
		require.Equal(t, 0, f.IndentLevel())
		require.Nil(t, f.Top())
		require.NoError(t, f.Err())
	})

	t.Run("else tracking", func(t *testing.T) {
		f, _ := newFormatter(Defaults)
		f.If("a")
		require.Equal(t, IfBlock{Condition: "a"}, f.Top())

		f.ElseIf("b")
		require.Equal(t, IfBlock{Condition: "b"}, f.Top())

		f.Else()
		require.Equal(t, ElseBlock{Condition: "b"}, f.Top())

		f.ElseIf("c")
		require.Equal(t, IfBlock{Condition: "c"}, f.Top())
		require.Equal(t, 1, f.Depth())
	})

	t.Run("without braces", func(t *testing.T) {
		f, out := newFormatter(FormatterOptions{IndentStyle: Spaces2})
		f.If("ready").AddLine("run();").EndIf()
		f.Class("Point", "").AddLine("int x;").EndClass()

		require.Equal(t, "if (ready)\nrun();\n\nclass Point\nint x;\n;\n", out.String())
	})

	t.Run("namespace ignores braces option", func(t *testing.T) {
		f, out := newFormatter(FormatterOptions{IndentStyle: Spaces4})
		f.Namespace("ns").AddLine("int x;").EndNamespace()
		require.Equal(t, "namespace ns {\n    int x;\n} // namespace ns\n", out.String())
	})

	t.Run("access labels", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Struct("Point", "Base").Protected().AddLine("int x;").EndClass()
		require.Equal(t, "struct Point : Base\n{\nprotected:\n  int x;\n};\n", out.String())
	})
}

func TestFormatter_Enum(t *testing.T) {
	t.Run("scoped", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Enum("Color", []string{"Red", "Green", "Blue"})
		require.Equal(t, "enum class Color\n{\n  Red,\n  Green,\n  Blue\n};\n", out.String())
		require.Equal(t, 0, f.Depth())
	})

	t.Run("name with class keyword", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Enum("class Mode : uint8_t", []string{"Off"})
		require.Equal(t, "enum class Mode : uint8_t\n{\n  Off\n};\n", out.String())
	})

	t.Run("class inside the name", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		f.Enum("Subclass", []string{"A"})
		require.Equal(t, "enum class Subclass\n{\n  A\n};\n", out.String())
	})

	t.Run("without braces", func(t *testing.T) {
		f, out := newFormatter(FormatterOptions{IndentStyle: Spaces2})
		f.Enum("Flag", []string{"A", "B"})
		require.Equal(t, "enum class Flag\nA,\nB\n;\n", out.String())
	})
}

func TestFormatter_Preprocessor(t *testing.T) {
	f, out := newFormatter(Defaults)
	f.IfNDef("APP_H_").Define("APP_H_").Include("<vector>").Include(`"app.h"`)
	f.IfDef("DEBUG").EndIfDef().EndIfDef()

	expected := "#ifndef APP_H_\n" +
		"#define APP_H_\n" +
		"#include <vector>\n" +
		"#include \"app.h\"\n" +
		"#ifdef DEBUG\n" +
		"#endif\n" +
		"#endif\n"
	require.Equal(t, expected, out.String())
}

func TestFormatter_Scope(t *testing.T) {
	t.Run("closes once", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		scope := f.OpenBlock("void run()")
		require.Equal(t, 2, f.IndentLevel())

		f.AddLine("work();")
		require.NoError(t, scope.Close())
		require.NoError(t, scope.Close())

		require.Equal(t, "void run()\n{\n    work();\n}\n", out.String())
		require.Equal(t, 0, f.IndentLevel())
	})

	t.Run("deferred close", func(t *testing.T) {
		f, out := newFormatter(Defaults)
		func() {
			defer f.OpenBlock("").Close()
			f.AddLine("x;")
		}()

		require.Equal(t, "{\n    x;\n}\n", out.String())
	})

	t.Run("nil scope", func(t *testing.T) {
		var scope *Scope
		require.NoError(t, scope.Close())
	})
}

func TestFormatter_Mismatch(t *testing.T) {
	ops := map[string]func(*Formatter){
		"EndIf":        func(f *Formatter) { f.EndIf() },
		"Else":         func(f *Formatter) { f.Else() },
		"ElseIf":       func(f *Formatter) { f.ElseIf("x") },
		"EndLoop":      func(f *Formatter) { f.EndLoop() },
		"EndClass":     func(f *Formatter) { f.EndClass() },
		"EndNamespace": func(f *Formatter) { f.EndNamespace() },
	}

	for name, op := range ops {
		t.Run(name+" lenient", func(t *testing.T) {
			var logs bytes.Buffer
			options := Defaults
			options.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

			f, out := newFormatter(options)
			if name == "EndNamespace" {
				f.Class("C", "")
			} else {
				f.Namespace("ns")
			}

			written, level, top := out.String(), f.IndentLevel(), f.Top()
			op(f)

			require.NoError(t, f.Err())
			require.Equal(t, written, out.String())
			require.Equal(t, level, f.IndentLevel())
			require.Equal(t, top, f.Top())
			require.Equal(t, 1, f.Depth())
			require.Contains(t, logs.String(), "Ignoring unbalanced block operation")
		})

		t.Run(name+" strict", func(t *testing.T) {
			f, out := newFormatter(FormatterOptions{IndentStyle: Spaces2, Braces: true, Strict: true})
			op(f)

			require.Empty(t, out.String())
			require.Equal(t, 0, f.IndentLevel())
			require.ErrorIs(t, f.Err(), ErrBlockMismatch)
		})
	}

	t.Run("else after else", func(t *testing.T) {
		f, out := newFormatter(FormatterOptions{IndentStyle: Spaces2, Braces: true, Strict: true})
		f.If("a").AddLine("x();").Else().AddLine("y();")
		require.Equal(t, ElseBlock{Condition: "a"}, f.Top())

		f.Else().AddLine("z();")
		require.Equal(t, ElseBlock{Condition: "a"}, f.Top())

		f.EndIf()
		require.NoError(t, f.Err())
		require.Equal(t, 0, f.Depth())
		require.Equal(t, "if (a)\n{\n  x();\n} else\n{\n  y();\n} else\n{\n  z();\n}\n", out.String())
	})
}

func TestFormatter_Flush(t *testing.T) {
	t.Run("flushes output", func(t *testing.T) {
		var sink bytes.Buffer
		f := New(stream.NewSinkOutput(&sink, 64), Defaults)
		f.AddLine("int x;")
		require.Empty(t, sink.String())

		require.NoError(t, f.Flush())
		require.Equal(t, "int x;\n", sink.String())
	})

	t.Run("lenient ignores open blocks", func(t *testing.T) {
		f, _ := newFormatter(Defaults)
		f.Namespace("ns")
		require.NoError(t, f.Flush())
		require.Equal(t, 1, f.Depth())
	})

	t.Run("strict reports open blocks", func(t *testing.T) {
		f, _ := newFormatter(FormatterOptions{IndentStyle: Spaces2, Strict: true})
		f.Namespace("ns").Class("C", "")

		err := f.Flush()
		require.ErrorIs(t, err, ErrUnclosedBlock)
		require.Contains(t, err.Error(), "class C")
	})
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func TestFormatter_OutputFailure(t *testing.T) {
	f := New(stream.NewSinkOutput(brokenWriter{}, 4), Defaults)
	f.AddLine("int value;")

	require.Error(t, f.Err())
	require.Contains(t, f.Err().Error(), "sink closed")

	f.Namespace("ns").Class("C", "")
	require.Equal(t, 2, f.Depth())
	f.EndClass().EndNamespace()
	require.Equal(t, 0, f.Depth())

	require.Contains(t, f.Flush().Error(), "sink closed")
}

func TestParseIndentStyle(t *testing.T) {
	tests := map[string]IndentStyle{
		"2":       Spaces2,
		"spaces2": Spaces2,
		"4":       Spaces4,
		" 4 ":     Spaces4,
		"Spaces4": Spaces4,
		"tabs":    Tabs,
		"TAB":     Tabs,
	}

	for text, expected := range tests {
		style, err := ParseIndentStyle(text)
		require.NoError(t, err, text)
		require.Equal(t, expected, style, text)
	}

	_, err := ParseIndentStyle("3")
	require.ErrorIs(t, err, ErrInvalidIndentStyle)

	var style IndentStyle
	require.NoError(t, style.UnmarshalText([]byte("tabs")))
	require.Equal(t, Tabs, style)
	require.Error(t, style.UnmarshalText([]byte("eight")))

	text, err := Spaces4.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "4", string(text))
}
