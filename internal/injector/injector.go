//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/config"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/scenario"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/server"
)

func InitializeRunner(cfg config.Config) *scenario.Runner {
	wire.Build(ProviderSet)
	return nil
}

func InitializeServer(cfg config.Config) *server.Server {
	wire.Build(ProviderSet)
	return nil
}
