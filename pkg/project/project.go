package project

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/consts"
	"github.com/pseudomuto/cppgen/pkg/stream"
)

var (
	//go:embed embed/cppgen.yaml
	defaultConfig []byte

	//go:embed embed/project.json
	defaultDescriptor []byte

	//go:embed embed/lib/core/greeting.inc
	defaultGreeting []byte

	image = fstest.MapFS{
		"lib":                   {Mode: os.ModeDir | consts.ModeDir},
		"lib/core":              {Mode: os.ModeDir | consts.ModeDir},
		"lib/core/greeting.inc": {Data: defaultGreeting},
		consts.ConfigFile:       {Data: defaultConfig},
		consts.DescriptorFile:   {Data: defaultDescriptor},
	}
)

// Project is a directory holding a cppgen.yaml, a project descriptor and any
// code libraries the descriptor references.
type Project struct {
	root string
}

// New creates a Project rooted at path. The directory must exist before
// Initialize is called.
func New(path string) *Project {
	return &Project{root: path}
}

// Root returns the project directory.
func (p *Project) Root() string {
	return p.root
}

// Path joins elem onto the project directory. Absolute paths are returned
// unchanged.
func (p *Project) Path(elem string) string {
	if filepath.IsAbs(elem) {
		return elem
	}
	return filepath.Join(p.root, elem)
}

// DescriptorPath returns the path of the default project descriptor.
func (p *Project) DescriptorPath() string {
	return p.Path(consts.DescriptorFile)
}

// LoadDescriptor loads the descriptor at path, relative to the project
// directory. An empty path loads the default descriptor.
func (p *Project) LoadDescriptor(path string) (*Descriptor, error) {
	if path == "" {
		return LoadDescriptorFile(p.DescriptorPath())
	}
	return LoadDescriptorFile(p.Path(path))
}

// Initialize writes the starter project: a cppgen.yaml, a project descriptor
// and an example code library. This method is idempotent - it only creates
// missing files and directories, preserving any existing content.
//
// Example:
//
//	proj := project.New("/path/to/my/project")
//	if err := proj.Initialize(); err != nil {
//		log.Fatal("Failed to initialize project:", err)
//	}
func (p *Project) Initialize() error {
	if err := p.ensureDirectory(); err != nil {
		return err
	}

	for path, entry := range image {
		fullPath := filepath.Join(p.root, path)

		if _, err := os.Stat(fullPath); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to stat %s", fullPath)
		}

		if entry.Mode.IsDir() {
			if err := os.MkdirAll(fullPath, entry.Mode.Perm()); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", fullPath)
			}

			continue
		}

		if err := stream.WriteFile(fullPath, entry.Data); err != nil {
			return errors.Wrapf(err, "failed to write file %s", fullPath)
		}
	}

	return nil
}

func (p *Project) ensureDirectory() error {
	dir, err := os.Stat(p.root)
	if err != nil {
		return errors.Wrapf(err, "failed to stat dir: %s", p.root)
	}

	if !dir.IsDir() {
		return errors.Errorf("%s is not a directory", p.root)
	}

	return nil
}
