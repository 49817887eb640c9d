package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/consts"
	"github.com/pseudomuto/cppgen/pkg/cpp"
	"github.com/pseudomuto/cppgen/pkg/format"
	"github.com/pseudomuto/cppgen/pkg/stream"
	"github.com/pseudomuto/cppgen/pkg/template"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from cppgen.yaml.
const (
	EnvOutputDir  = "CPPGEN_OUTPUT_DIR"
	EnvIndent     = "CPPGEN_INDENT"
	EnvBraces     = "CPPGEN_BRACES"
	EnvStrict     = "CPPGEN_STRICT"
	EnvBufferSize = "CPPGEN_BUFFER_SIZE"
)

// DefaultOutputDir is used when the configuration doesn't name one.
const DefaultOutputDir = "generated"

type (
	// Formatter configures the layout of generated code.
	Formatter struct {
		// Indent is 2, 4 or tabs
		Indent format.IndentStyle `yaml:"indent"`

		// Braces writes opening braces of blocks on their own line
		Braces bool `yaml:"braces"`

		// Strict reports unbalanced block operations as errors
		Strict bool `yaml:"strict"`
	}

	// Generator configures the content of generated files.
	Generator struct {
		Comments           bool   `yaml:"comments"`
		PragmaOnce         bool   `yaml:"pragma_once"`
		IncludeGuards      bool   `yaml:"include_guards"`
		IncludeGuardPrefix string `yaml:"include_guard_prefix"`
		FileHeader         string `yaml:"file_header"`
	}

	// Config represents the cppgen.yaml project configuration.
	Config struct {
		// OutputDir is where generated files are written unless the descriptor
		// or the command line names another directory
		OutputDir string `yaml:"output_dir"`

		// BufferSize is the size of the file stream buffers
		BufferSize int `yaml:"buffer_size"`

		Formatter Formatter `yaml:"formatter"`
		Generator Generator `yaml:"generator"`

		// Libraries maps code library names to directories, relative to Dir
		Libraries map[string]string `yaml:"libraries"`

		// Dir is the directory the configuration was loaded from
		Dir string `yaml:"-"`
	}
)

// Default returns the configuration used when no cppgen.yaml exists.
func Default() *Config {
	return &Config{
		OutputDir:  DefaultOutputDir,
		BufferSize: stream.DefaultBufferSize,
		Formatter: Formatter{
			Indent: format.Defaults.IndentStyle,
			Braces: format.Defaults.Braces,
		},
		Generator: Generator{
			Comments:   true,
			PragmaOnce: true,
		},
		Dir: ".",
	}
}

// LoadConfig parses a configuration from r. Values missing from the YAML keep
// their defaults, and an empty document yields the default configuration.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader(`
//	output_dir: build/gen
//	formatter:
//	  indent: tabs
//	libraries:
//	  core: lib/core
//	`))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Println(cfg.OutputDir) // build/gen
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = stream.DefaultBufferSize
	}

	return cfg, nil
}

// LoadConfigFile loads the configuration at path. Library paths are resolved
// relative to the file's directory.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, err
	}

	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// Load returns the configuration for the project in dir: cppgen.yaml when it
// exists, the defaults otherwise, with CPPGEN_* environment variables applied.
func Load(dir string) (*Config, error) {
	cfg := Default()
	cfg.Dir = dir

	path := filepath.Join(dir, consts.ConfigFile)
	if _, err := os.Stat(path); err == nil {
		if cfg, err = LoadConfigFile(path); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides the configuration from CPPGEN_* environment variables.
func (c *Config) ApplyEnv() error {
	env.Load()

	c.OutputDir = env.Str(EnvOutputDir, c.OutputDir)
	c.BufferSize = env.Int(EnvBufferSize, c.BufferSize)

	if env.Has(EnvIndent) {
		if err := c.Formatter.Indent.UnmarshalText([]byte(env.Str(EnvIndent))); err != nil {
			return errors.Wrapf(err, "invalid %s", EnvIndent)
		}
	}

	if env.Has(EnvBraces) {
		c.Formatter.Braces = env.Bool(EnvBraces)
	}

	if env.Has(EnvStrict) {
		c.Formatter.Strict = env.Bool(EnvStrict)
	}

	return nil
}

// FormatterOptions returns the formatter options described by the config.
func (c *Config) FormatterOptions() format.FormatterOptions {
	return format.FormatterOptions{
		IndentStyle: c.Formatter.Indent,
		Braces:      c.Formatter.Braces,
		Strict:      c.Formatter.Strict,
	}
}

// GeneratorOptions returns the C++ generator options described by the
// config.
func (c *Config) GeneratorOptions() cpp.Options {
	return cpp.Options{
		Formatter:          c.FormatterOptions(),
		Comments:           c.Generator.Comments,
		FileHeader:         c.Generator.FileHeader,
		PragmaOnce:         c.Generator.PragmaOnce,
		IncludeGuards:      c.Generator.IncludeGuards,
		IncludeGuardPrefix: c.Generator.IncludeGuardPrefix,
	}
}

// Engine returns a template engine with the configured code libraries
// registered.
func (c *Config) Engine() *template.Engine {
	engine := template.New()
	for name, path := range c.Libraries {
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Dir, path)
		}
		engine.AddLibrary(name, path)
	}

	return engine
}
