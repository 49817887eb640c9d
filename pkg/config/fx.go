package config

import (
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads cppgen.yaml from the working directory when it exists. Commands like
	// init work without one, so a missing file yields the defaults.
	func() (*Config, error) {
		return Load(".")
	},
))
