// Package format provides a structural formatter for brace-delimited source
// text such as C++.
//
// A Formatter turns a sequence of high-level calls ("open namespace", "open
// class", "if", "else", "close") into consistently indented text written to a
// stream.Output. It tracks the open constructs on a block stack so that every
// close operation emits the delimiter that matches the construct it closes.
//
// Key features:
//   - Indentation with 2 spaces, 4 spaces or tabs
//   - Optional brace lines for blocks
//   - Chained conditionals rendered as "} else if (...)" on the closing line
//   - Scoped blocks that close on any exit path via defer
//   - Lenient (default) or strict handling of unbalanced close calls
//
// Usage:
//
//	out := stream.NewBufferOutput(nil)
//	f := format.New(out, format.Defaults)
//
//	f.Namespace("app")
//	f.Class("Widget", "public Base")
//	f.Public()
//	f.AddLine("Widget();")
//	f.EndClass()
//	f.EndNamespace()
//
//	if err := f.Flush(); err != nil {
//		return err
//	}
//
// Output:
//
//	namespace app {
//	  class Widget : public Base
//	  {
//	  public:
//	    Widget();
//	  };
//	} // namespace app
//
// Close operations that do not match the innermost open construct are
// ignored by default. With FormatterOptions.Strict set they are reported
// through Err as ErrBlockMismatch, and Flush reports blocks left open as
// ErrUnclosedBlock.
package format
