// Package cpp generates C++ declarations and definitions on top of a
// format.Formatter.
//
// The package models the C++ constructs the generator emits (types,
// parameters, functions, members and classes) and a Generator that writes
// them with consistent layout:
//
//	out := stream.NewBufferOutput(nil)
//	g := cpp.New(out, cpp.DefaultOptions())
//
//	g.BeginFile("widget.h", []string{"<string>"})
//	g.BeginNamespace("app")
//	g.ClassDeclaration(cpp.Class{
//		Name: "Widget",
//		Members: []cpp.Member{
//			{Type: cpp.Type{Name: "std::string"}, Name: "name_"},
//		},
//	})
//	g.EndNamespace()
//	g.EndFile()
//
//	if err := g.Flush(); err != nil {
//		return err
//	}
//
// Header files receive class declarations (ClassDeclaration) and source
// files receive out-of-line implementations (ClassImplementation).
package cpp
