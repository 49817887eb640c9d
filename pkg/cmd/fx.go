package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		newProject,
		fx.Annotate(generate, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(initCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(templates, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(verify, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
