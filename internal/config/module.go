package config

import "go.uber.org/fx"

// Module supplies parsed configuration to the container.
var Module = fx.Provide(Load)
