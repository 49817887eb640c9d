package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/cppgen/pkg/config"
	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/urfave/cli/v3"
)

// generate returns a CLI command that renders a project descriptor into C++
// files.
//
// The descriptor defaults to project.json in the project directory. Files are
// written to the first of --output, the descriptor's output_dir and the
// configured output_dir. Code libraries come from cppgen.yaml.
//
// With --dry-run nothing is written; every file is rendered to stdout under a
// "// ==> name <==" banner instead.
//
// Example usage:
//
//	# Generate from project.json
//	cppgen generate
//
//	# Generate a YAML descriptor into build/gen
//	cppgen generate -o build/gen shapes.yaml
//
//	# Preview the output
//	cppgen generate --dry-run
func generate(p *project.Project, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate C++ files from a project descriptor",
		ArgsUsage: "[descriptor]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "the output directory (overrides the descriptor and config)",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the generated files instead of writing them",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := loadDescriptor(p, cmd.Args().First(), false)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			dir := outputDir(p, cfg, d, cmd.String("output"))
			gen := newGenerator(cfg, dir)

			if cmd.Bool("dry-run") {
				for _, f := range d.Files {
					fmt.Fprintf(w, "// ==> %s <==\n", f.Filename)
					if err := gen.Render(w, d, f); err != nil {
						return err
					}
				}

				return nil
			}

			manifest, err := gen.Generate(ctx, d)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "Generated %d file(s) in %s\n", manifest.Len(), dir)
			return nil
		},
	}
}
