package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/pseudomuto/cppgen/pkg/config"
	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/urfave/cli/v3"
)

// templates returns a CLI command listing the code templates a descriptor
// defines and the code libraries configured in cppgen.yaml.
func templates(p *project.Project, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "templates",
		Usage:     "List code templates and libraries",
		ArgsUsage: "[descriptor]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := loadDescriptor(p, cmd.Args().First(), false)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			fmt.Fprintln(w, "Templates:")
			for _, name := range slices.Sorted(maps.Keys(d.CodeTemplates)) {
				fmt.Fprintf(w, "  %s\n", name)
			}

			fmt.Fprintln(w, "Libraries:")
			for _, name := range slices.Sorted(maps.Keys(cfg.Libraries)) {
				fmt.Fprintf(w, "  %s: %s\n", name, cfg.Libraries[name])
			}

			return nil
		},
	}
}
