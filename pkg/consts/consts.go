package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the name of the tool configuration file looked up in the
	// project directory
	ConfigFile = "cppgen.yaml"

	// DescriptorFile is the default project descriptor name
	DescriptorFile = "project.json"

	// ManifestFile is the name of the manifest written next to generated output
	ManifestFile = "cppgen.sum"
)
