package generator

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/consts"
	"github.com/pseudomuto/cppgen/pkg/cpp"
	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/pseudomuto/cppgen/pkg/stream"
	"github.com/pseudomuto/cppgen/pkg/template"
)

const (
	// FunctionCommentTemplate names the code template used for the comment
	// above function declarations. It receives ${function_name}.
	FunctionCommentTemplate = "function_comment"

	snippetBegin = "// Inserted snippet"
	snippetEnd   = "// End of inserted snippet"
)

type (
	// Params configure a Generator.
	Params struct {
		// OutputDir overrides the descriptor's output_dir when set.
		OutputDir string

		Options    cpp.Options
		Engine     *template.Engine
		BufferSize int
		Logger     *slog.Logger

		// Now supplies the TIMESTAMP variable. Defaults to time.Now.
		Now func() time.Time
	}

	// Generator renders project descriptors into C++ files.
	Generator struct {
		outputDir  string
		options    cpp.Options
		engine     *template.Engine
		bufferSize int
		logger     *slog.Logger
		now        func() time.Time
	}
)

// New creates a Generator. The Engine is cloned for every run, so code
// libraries registered on it are shared while descriptor variables and
// templates are not.
func New(p Params) *Generator {
	g := &Generator{
		outputDir:  p.OutputDir,
		options:    p.Options,
		engine:     p.Engine,
		bufferSize: p.BufferSize,
		logger:     p.Logger,
		now:        p.Now,
	}

	if g.engine == nil {
		g.engine = template.New()
	}
	if g.bufferSize <= 0 {
		g.bufferSize = stream.DefaultBufferSize
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.now == nil {
		g.now = time.Now
	}

	return g
}

// OutputDir returns the directory files for d are written to.
func (g *Generator) OutputDir(d *project.Descriptor) string {
	switch {
	case g.outputDir != "":
		return g.outputDir
	case d.OutputDir != "":
		return d.OutputDir
	default:
		return "."
	}
}

// Generate writes every file of d to the output directory, then copies the
// requested files, inserts snippets and finally writes the manifest
// (cppgen.sum) covering everything written.
//
// Cancellation of ctx is checked between files.
func (g *Generator) Generate(ctx context.Context, d *project.Descriptor) (*Manifest, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	engine := g.prepare(d)
	outputDir := g.OutputDir(d)

	if err := os.MkdirAll(outputDir, consts.ModeDir); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory: %s", outputDir)
	}

	written := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "generation cancelled")
		}

		if err := g.writeFile(engine, d, f, outputDir); err != nil {
			return nil, err
		}
		written = append(written, f.Filename)
	}

	for _, f := range d.Files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "generation cancelled")
		}

		for _, ref := range f.CopyFiles {
			name, err := g.copyFile(engine, ref, outputDir)
			if err != nil {
				return nil, err
			}
			if name != "" {
				written = append(written, name)
			}
		}

		for _, ref := range f.InsertSnippets {
			snippet, err := engine.Include(ref)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to resolve snippet %s", ref)
			}

			if snippet == "" {
				g.logger.Warn("Skipping unresolved snippet", "snippet", ref, "file", f.Filename)
				continue
			}

			if err := InsertSnippet(filepath.Join(outputDir, filepath.FromSlash(f.Filename)), snippet); err != nil {
				return nil, err
			}
		}
	}

	manifest, err := g.writeManifest(outputDir, written)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Generated project", "name", d.Name, "dir", outputDir, "files", manifest.Len())
	return manifest, nil
}

// Render writes file f of d to w without touching the output directory.
func (g *Generator) Render(w io.Writer, d *project.Descriptor, f *project.File) error {
	sink := stream.NewSinkOutput(w, g.bufferSize)
	if err := g.render(sink, g.prepare(d), d, f); err != nil {
		_ = sink.Close()
		return err
	}

	return errors.Wrapf(sink.Close(), "failed to render %s", f.Filename)
}

// InsertSnippet appends snippet to the file at path, wrapped in marker
// comments.
func InsertSnippet(path, snippet string) error {
	content, err := stream.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to insert snippet into %s", path)
	}

	var sb strings.Builder
	sb.WriteString(content)
	sb.WriteString("\n" + snippetBegin + "\n")
	sb.WriteString(snippet)
	sb.WriteString("\n" + snippetEnd + "\n")

	return errors.Wrapf(stream.WriteFile(path, []byte(sb.String())), "failed to insert snippet into %s", path)
}

func (g *Generator) prepare(d *project.Descriptor) *template.Engine {
	engine := g.engine.Clone()
	engine.SetVariables(d.VariablesAt(g.now()))

	for name, content := range d.CodeTemplates {
		engine.RegisterTemplate(name, content)
	}

	return engine
}

func (g *Generator) writeFile(engine *template.Engine, d *project.Descriptor, f *project.File, outputDir string) error {
	buf := stream.NewBufferOutput(make([]byte, 0, g.bufferSize))
	if err := g.render(buf, engine, d, f); err != nil {
		return err
	}

	path := filepath.Join(outputDir, filepath.FromSlash(f.Filename))
	out, err := stream.NewFileOutput(path, g.bufferSize)
	if err != nil {
		return err
	}

	if err := stream.WriteRaw(out, buf.Bytes()); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}

	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	g.logger.Debug("Generated file", "path", path, "bytes", buf.Len())
	return nil
}

// copyFile copies ref into the output directory, falling back to writing the
// code it resolves to. It returns the name of the written file, or "" when
// nothing could be written.
func (g *Generator) copyFile(engine *template.Engine, ref, outputDir string) (string, error) {
	name := ref
	if _, component, ok := strings.Cut(ref, template.LibrarySeparator); ok {
		name = component
	}
	name = filepath.Base(name)
	dst := filepath.Join(outputDir, name)

	if _, err := stream.CopyFile(ref, dst); err == nil {
		return name, nil
	}

	content, ok := engine.Resolve(ref)
	if !ok || content == "" {
		g.logger.Warn("Skipping file that could not be copied", "file", ref)
		return "", nil
	}

	if err := stream.WriteFile(dst, []byte(content)); err != nil {
		return "", errors.Wrapf(err, "failed to copy %s", ref)
	}

	return name, nil
}

func (g *Generator) writeManifest(outputDir string, names []string) (*Manifest, error) {
	manifest := NewManifest()

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = filepath.ToSlash(filepath.Clean(name))
		if seen[name] {
			continue
		}
		seen[name] = true

		content, err := stream.ReadFile(filepath.Join(outputDir, filepath.FromSlash(name)))
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash generated file")
		}
		manifest.Add(name, []byte(content))
	}

	var buf bytes.Buffer
	if _, err := manifest.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to encode manifest")
	}

	path := filepath.Join(outputDir, consts.ManifestFile)
	if err := stream.WriteFile(path, buf.Bytes()); err != nil {
		return nil, errors.Wrap(err, "failed to write manifest")
	}

	return manifest, nil
}

// render writes a complete file: declarations for headers and
// implementations for sources. Only headers get #pragma once or include
// guards.
func (g *Generator) render(out stream.Output, engine *template.Engine, d *project.Descriptor, f *project.File) error {
	if len(f.Templates) > 0 {
		engine = engine.Clone()
		for name, content := range f.Templates {
			engine.RegisterTemplate(name, content)
		}
	}

	conv := &converter{engine: engine}
	functions, err := conv.functions(f.Functions)
	if err != nil {
		return errors.Wrapf(err, "failed to render %s", f.Filename)
	}

	classes, err := conv.classes(f.Classes)
	if err != nil {
		return errors.Wrapf(err, "failed to render %s", f.Filename)
	}

	header := f.IsHeader()
	options := g.options
	if !header {
		options.PragmaOnce = false
		options.IncludeGuards = false
	}

	gen := cpp.New(out, options)

	var blocks []func()
	if header && len(functions) > 0 {
		blocks = append(blocks, func() {
			for _, fn := range functions {
				gen.FunctionDeclaration(fn)
			}
		})
	}

	if !header {
		for _, fn := range functions {
			blocks = append(blocks, func() { gen.FunctionImplementation(fn, "") })
		}
	}

	if len(f.Globals) > 0 {
		blocks = append(blocks, func() {
			for _, m := range f.Globals {
				gen.Global(member(m))
			}
		})
	}

	for _, c := range classes {
		switch {
		case header:
			blocks = append(blocks, func() { gen.ClassDeclaration(c) })
		case slices.ContainsFunc(c.Functions, cpp.Function.Implemented):
			blocks = append(blocks, func() { gen.ClassImplementation(c) })
		}
	}

	gen.BeginFile(f.Filename, slices.Concat(f.Includes, d.CommonIncludes))
	for _, ns := range f.Namespaces {
		gen.BeginNamespace(ns)
	}

	for i, block := range blocks {
		if i > 0 {
			gen.Formatter().EndLine()
		}
		block()
	}

	for range f.Namespaces {
		gen.EndNamespace()
	}
	gen.EndFile()

	return errors.Wrapf(gen.Flush(), "failed to render %s", f.Filename)
}
