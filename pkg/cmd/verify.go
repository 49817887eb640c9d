package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/config"
	"github.com/pseudomuto/cppgen/pkg/consts"
	"github.com/pseudomuto/cppgen/pkg/generator"
	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/urfave/cli/v3"
)

// verify returns a CLI command that checks generated files against the
// cppgen.sum written by the last generate run.
//
// The output directory is resolved the same way generate resolves it. Any
// file that was edited or removed since it was generated fails the command.
//
// Example usage:
//
//	cppgen verify
//	cppgen verify -o build/gen
func verify(p *project.Project, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Verify generated files against cppgen.sum",
		ArgsUsage: "[descriptor]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "the output directory to verify",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := loadDescriptor(p, cmd.Args().First(), true)
			if err != nil {
				return err
			}

			dir := outputDir(p, cfg, d, cmd.String("output"))
			sumPath := filepath.Join(dir, consts.ManifestFile)

			f, err := os.Open(sumPath)
			if err != nil {
				return errors.Wrapf(err, "failed to open manifest: %s", sumPath)
			}
			defer func() { _ = f.Close() }()

			manifest, err := generator.LoadManifest(f)
			if err != nil {
				return errors.Wrapf(err, "failed to load manifest: %s", sumPath)
			}

			if err := manifest.Verify(os.DirFS(dir)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "Verified %d file(s) in %s\n", manifest.Len(), dir)
			return nil
		},
	}
}
