package cmd

import (
	"log/slog"
	"os"

	"github.com/pseudomuto/cppgen/pkg/config"
	"github.com/pseudomuto/cppgen/pkg/generator"
	"github.com/pseudomuto/cppgen/pkg/project"
)

// outputDir picks the output directory: the --output flag, then the
// descriptor's output_dir, then the configured one. Relative paths are taken
// from the project root.
func outputDir(p *project.Project, cfg *config.Config, d *project.Descriptor, flag string) string {
	dir := flag
	if dir == "" && d != nil {
		dir = d.OutputDir
	}
	if dir == "" {
		dir = cfg.OutputDir
	}

	return p.Path(dir)
}

// loadDescriptor loads the descriptor named by path, or the project's default
// one. When optional is set, a missing default descriptor is not an error.
func loadDescriptor(p *project.Project, path string, optional bool) (*project.Descriptor, error) {
	if path == "" && optional {
		if _, err := os.Stat(p.DescriptorPath()); os.IsNotExist(err) {
			return nil, nil
		}
	}

	return p.LoadDescriptor(path)
}

func newGenerator(cfg *config.Config, outputDir string) *generator.Generator {
	return generator.New(generator.Params{
		OutputDir:  outputDir,
		Options:    cfg.GeneratorOptions(),
		Engine:     cfg.Engine(),
		BufferSize: cfg.BufferSize,
		Logger:     slog.Default(),
	})
}
