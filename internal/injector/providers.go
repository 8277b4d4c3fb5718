package injector

import (
	"github.com/google/wire"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/config"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/network"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/resolver"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/scenario"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/server"
)

// ProviderSet builds everything the binaries need from a loaded config.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideResolverOptions,
	ProvideServerConfig,
	network.NewBuilder,
	scenario.NewRunner,
	server.NewServer,
)

func ProvideLogger(cfg config.Config) *log.Logger {
	return log.New(cfg.LogLevel())
}

func ProvideResolverOptions(cfg config.Config) resolver.Options {
	return cfg.ResolverOptions()
}

func ProvideServerConfig(cfg config.Config) server.Config {
	return server.Config{
		ListenAddr:     cfg.Server.ListenAddr,
		MaxMessageSize: cfg.Server.MaxMessageSize,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
	}
}
