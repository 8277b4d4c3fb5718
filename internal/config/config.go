package config

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/resolver"
)

// Environment variables that override file settings.
const (
	EnvLogLevel     = "FLE_LOG_LEVEL"
	EnvListenAddr   = "FLE_LISTEN_ADDR"
	EnvBatchWorkers = "FLE_BATCH_WORKERS"
)

// Config is the settings shared by the server and the batch tool.
type Config struct {
	Log      LogConfig      `json:"log" yaml:"log"`
	Resolver ResolverConfig `json:"resolver" yaml:"resolver"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Batch    BatchConfig    `json:"batch" yaml:"batch"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

type ResolverConfig struct {
	BlockingRadius               float64 `json:"blocking_radius" yaml:"blocking_radius"`
	MaxEdgePointsPerSide         int     `json:"max_edge_points_per_side" yaml:"max_edge_points_per_side"`
	PowerSameNetworkShortCircuit bool    `json:"power_same_network_short_circuit" yaml:"power_same_network_short_circuit"`
}

type ServerConfig struct {
	ListenAddr     string        `json:"listen_addr" yaml:"listen_addr"`
	MaxMessageSize int64         `json:"max_message_size" yaml:"max_message_size"`
	ReadTimeout    time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

type BatchConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

func Default() Config {
	opts := resolver.DefaultOptions()
	return Config{
		Log: LogConfig{Level: log.LevelInfo.String()},
		Resolver: ResolverConfig{
			BlockingRadius:               opts.BlockingRadius,
			MaxEdgePointsPerSide:         opts.MaxEdgePointsPerSide,
			PowerSameNetworkShortCircuit: opts.PowerSameNetworkShortCircuit,
		},
		Server: ServerConfig{
			ListenAddr:     "127.0.0.1:8080",
			MaxMessageSize: 1024 * 1024, // 1MB
			ReadTimeout:    time.Minute,
			WriteTimeout:   10 * time.Second,
		},
		Batch: BatchConfig{Workers: 4},
	}
}

// LoadYAML reads a config on top of the defaults.
func LoadYAML(r io.Reader) (Config, error) {
	c := Default()
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return c, c.Validate()
}

// LoadFile loads a YAML file, or the defaults when path is empty. Environment
// overrides are applied afterwards, including any set in a .env file in the
// working directory.
func LoadFile(path string) (Config, error) {
	c := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "open config %s", path)
		}
		defer f.Close()
		if c, err = LoadYAML(f); err != nil {
			return Config{}, errors.Wrapf(err, "load config %s", path)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "load .env")
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// ApplyEnv overrides settings from the environment through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvListenAddr); ok && v != "" {
		c.Server.ListenAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvBatchWorkers); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s", EnvBatchWorkers)
		}
		c.Batch.Workers = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.Resolver.BlockingRadius <= 0 {
		return errors.Errorf("resolver.blocking_radius must be positive, got %v", c.Resolver.BlockingRadius)
	}
	if c.Resolver.MaxEdgePointsPerSide < 1 {
		return errors.Errorf("resolver.max_edge_points_per_side must be at least 1, got %d", c.Resolver.MaxEdgePointsPerSide)
	}
	if c.Server.ListenAddr == "" {
		return errors.New("server.listen_addr is required")
	}
	if c.Server.MaxMessageSize <= 0 {
		return errors.Errorf("server.max_message_size must be positive, got %d", c.Server.MaxMessageSize)
	}
	if c.Batch.Workers < 1 {
		return errors.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	return nil
}

// LogLevel parses Log.Level; unknown names mean info.
func (c Config) LogLevel() log.Level {
	return log.ParseLevel(c.Log.Level)
}

func (c Config) ResolverOptions() resolver.Options {
	return resolver.Options{
		BlockingRadius:               c.Resolver.BlockingRadius,
		MaxEdgePointsPerSide:         c.Resolver.MaxEdgePointsPerSide,
		PowerSameNetworkShortCircuit: c.Resolver.PowerSameNetworkShortCircuit,
	}
}
