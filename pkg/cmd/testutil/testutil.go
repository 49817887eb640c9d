package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/cppgen/pkg/config"
	"github.com/pseudomuto/cppgen/pkg/consts"
	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/stretchr/testify/require"
)

// ProjectFixture is an initialized cppgen project in a temp directory.
type ProjectFixture struct {
	Dir     string
	Config  *config.Config
	Project *project.Project
	t       *testing.T
}

// TestProject creates an isolated temp directory holding the starter project
// written by init.
func TestProject(t *testing.T) *ProjectFixture {
	t.Helper()

	tmpDir := t.TempDir()
	proj := project.New(tmpDir)
	require.NoError(t, proj.Initialize(), "Failed to initialize test project")

	fixture := &ProjectFixture{
		Dir:     tmpDir,
		Project: proj,
		t:       t,
	}

	fixture.reloadConfig()
	return fixture
}

// WithConfig replaces cppgen.yaml and reloads the configuration.
func (p *ProjectFixture) WithConfig(content string) *ProjectFixture {
	p.t.Helper()

	p.WithFile(consts.ConfigFile, content)
	p.reloadConfig()
	return p
}

// WithDescriptor replaces the default project descriptor.
func (p *ProjectFixture) WithDescriptor(content string) *ProjectFixture {
	p.t.Helper()
	return p.WithFile(consts.DescriptorFile, content)
}

// WithFile writes content to a path relative to the project directory.
func (p *ProjectFixture) WithFile(path, content string) *ProjectFixture {
	p.t.Helper()

	fullPath := filepath.Join(p.Dir, path)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(fullPath), consts.ModeDir))
	require.NoError(p.t, os.WriteFile(fullPath, []byte(content), consts.ModeFile))
	return p
}

// OutputDir returns the configured output directory.
func (p *ProjectFixture) OutputDir() string {
	return filepath.Join(p.Dir, p.Config.OutputDir)
}

// ReadOutput returns the content of a generated file.
func (p *ProjectFixture) ReadOutput(name string) string {
	p.t.Helper()

	content, err := os.ReadFile(filepath.Join(p.OutputDir(), name))
	require.NoError(p.t, err)
	return string(content)
}

func (p *ProjectFixture) reloadConfig() {
	p.t.Helper()

	cfg, err := config.LoadConfigFile(filepath.Join(p.Dir, consts.ConfigFile))
	require.NoError(p.t, err, "Failed to load config file")

	if p.Config == nil {
		p.Config = cfg
		return
	}

	// commands hold the pointer, so update in place
	*p.Config = *cfg
}
