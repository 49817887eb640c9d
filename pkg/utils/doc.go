// Package utils provides small helpers for building C++ source text that are
// shared by the generator packages.
//
// # Identifier Utilities (identifier.go)
//
// Include guards are derived from a file name:
//
//	guard := utils.IncludeGuard("MYLIB_", "core/widget.h")
//	// Result: MYLIB_CORE_WIDGET_H_
//
// Include targets are quoted unless they are already angle-bracketed:
//
//	utils.QuoteInclude("widget.h")  // "widget.h" (with quotes)
//	utils.QuoteInclude("<vector>")  // <vector>
//
// Accessor names drop the member suffix and capitalize the first letter:
//
//	utils.AccessorName("Get", "count_")  // GetCount
//
// # Text Utilities (text.go)
//
// SplitLines splits a function body into lines without producing an empty
// trailing line for text that ends in a newline.
package utils
