package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/config"
	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Config     *config.Config
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Project    *project.Project
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the cppgen CLI application with the fx lifecycle. The
// application runs once fx has started and shuts fx down with an exit code
// reflecting the outcome.
//
// Global Flags:
//   - --dir, -d: Project directory (defaults to current directory, CPPGEN_DIR)
//
// Before any command runs, the working directory is changed to --dir and the
// shared project and configuration are reloaded from there, so commands always
// see the cppgen.yaml of the selected project.
//
// Example usage:
//
//	cppgen init
//	cppgen --dir examples/shapes generate
//	cppgen generate --dry-run project.yaml
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "cppgen",
		Usage: "Generate C++ sources from project descriptors",
		Description: `cppgen renders C++ headers and sources from a JSON or YAML project
descriptor, expanding code templates and library includes along the way, and
records what it wrote in cppgen.sum so edits can be detected.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the project directory",
				Value:       ".",
				DefaultText: "Current directory",
				Sources:     cli.EnvVars("CPPGEN_DIR"),
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, load(cmd.String("dir"), p.Project, p.Config)
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

// load switches to dir and refreshes the shared project and configuration in
// place. Commands hold pointers to both, so they observe the new values.
func load(dir string, proj *project.Project, cfg *config.Config) error {
	if err := os.Chdir(dir); err != nil {
		return errors.Wrapf(err, "failed to change to project directory: %s", dir)
	}

	pwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get current working directory")
	}

	loaded, err := config.Load(pwd)
	if err != nil {
		return err
	}

	*proj = *project.New(pwd)
	*cfg = *loaded
	return nil
}

func newProject() (*project.Project, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current working directory")
	}

	return project.New(pwd), nil
}
