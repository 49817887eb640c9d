// Package generator turns a project descriptor into C++ files on disk.
//
// For every file in the descriptor the Generator renders the file into an
// in-memory stream.BufferOutput and then writes it through a
// stream.FileOutput. Header files receive declarations and source files
// receive out-of-line implementations. Function bodies are expanded with the
// template engine, so they may contain ${VAR} placeholders and
// @include(lib::component) directives.
//
// After the files are written the Generator copies the requested files into
// the output directory, appends code snippets to their target files and
// writes a manifest (cppgen.sum) of everything it produced:
//
//	g := generator.New(generator.Params{
//		OutputDir: "generated",
//		Options:   cpp.DefaultOptions(),
//	})
//
//	manifest, err := g.Generate(ctx, descriptor)
//	if err != nil {
//		return err
//	}
//
// # Manifest
//
// The manifest records a chained SHA256 hash per file (each hash includes the
// previous one) plus a total hash over all of them, both encoded as
// "h1:<base64>". Verify rehashes the files from an fs.FS and reports
// modified files as ErrManifestMismatch.
package generator
