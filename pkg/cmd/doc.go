// Package cmd provides the CLI commands for cppgen.
//
// Each command is a function returning a *cli.Command, following the
// urfave/cli/v3 pattern, and is registered with the application through the
// fx "commands" group (see Module).
//
// # Available Commands
//
//   - init: write a starter cppgen.yaml, project.json and code library
//   - generate: render a project descriptor into C++ files and cppgen.sum
//   - verify: check generated files against cppgen.sum
//   - templates: list code templates and configured libraries
//
// # Global Options
//
//   - --dir, -d: project directory (defaults to the current directory)
//   - --help, -h: display command help
//   - --version: display version information
//
// # Example Usage
//
//	cppgen init
//	cppgen generate                       # project.json into output_dir
//	cppgen generate -o build shapes.yaml  # explicit descriptor and output
//	cppgen generate --dry-run             # print instead of writing
//	cppgen verify
package cmd
