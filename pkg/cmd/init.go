package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/urfave/cli/v3"
)

// initCmd returns a CLI command that initializes a cppgen project in the
// project directory.
//
// Created structure:
//   - cppgen.yaml: formatter and generator settings plus code libraries
//   - project.json: an example descriptor
//   - lib/core/greeting.inc: an example library component
//
// Initialization is idempotent. Existing files are never overwritten.
func initCmd(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a project in the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := p.Initialize(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "Initialized cppgen project in %s\n", p.Root())
			return nil
		},
	}
}
