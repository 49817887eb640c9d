package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/cppgen/pkg/cmd/testutil"
	"github.com/pseudomuto/cppgen/pkg/config"
	"github.com/pseudomuto/cppgen/pkg/consts"
	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestInitCommand_BasicInitialization(t *testing.T) {
	tmpDir := t.TempDir()
	command := initCmd(project.New(tmpDir))

	var buf bytes.Buffer
	testCmd := &cli.Command{Writer: &buf}

	err := command.Action(context.Background(), testCmd)
	require.NoError(t, err, "Init command should succeed")
	require.Contains(t, buf.String(), "Initialized cppgen project in "+tmpDir)

	require.FileExists(t, filepath.Join(tmpDir, consts.DescriptorFile))
	require.FileExists(t, filepath.Join(tmpDir, "lib", "core", "greeting.inc"))

	cfg, err := config.LoadConfigFile(filepath.Join(tmpDir, consts.ConfigFile))
	require.NoError(t, err)
	require.Equal(t, "generated", cfg.OutputDir)
	require.Equal(t, map[string]string{"core": "lib/core"}, cfg.Libraries)

	d, err := project.LoadDescriptorFile(filepath.Join(tmpDir, consts.DescriptorFile))
	require.NoError(t, err)
	require.NoError(t, d.Validate())
	require.Equal(t, "example", d.Name)
}

func TestInitCommand_IdempotentInitialization(t *testing.T) {
	fixture := testutil.TestProject(t)

	customContent := "output_dir: custom\n"
	fixture.WithFile(consts.ConfigFile, customContent)

	_, err := testutil.RunCommand(t, initCmd(fixture.Project))
	require.NoError(t, err, "Second init should succeed")

	content, err := os.ReadFile(filepath.Join(fixture.Dir, consts.ConfigFile))
	require.NoError(t, err)
	require.Equal(t, customContent, string(content), "Custom content should be preserved")
}

func TestInitCommand_MissingDirectory(t *testing.T) {
	command := initCmd(project.New(filepath.Join(t.TempDir(), "missing")))

	_, err := testutil.RunCommand(t, command)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to stat dir")
}
