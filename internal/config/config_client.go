package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the server base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// IdleTimeout is the idle lock period.
	IdleTimeout time.Duration
}

// ClientConfig is the client's view of [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Workers ClientWorkers
}

// ClientOverrides carries values given on the client command line.
// Zero fields are ignored.
type ClientOverrides struct {
	ServerAddress  string
	RequestTimeout time.Duration
	IdleTimeout    time.Duration
	ConfigPath     string
}

// GetClientConfig builds and validates the client configuration.
//
// Sources, highest priority first: command-line overrides, environment
// variables, JSON file, defaults. The client does not parse os.Args itself;
// its command-line layer hands the values over in overrides.
func GetClientConfig(overrides ClientOverrides) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		with(&StructuredConfig{
			Adapter: Adapter{
				HTTPAddress:    overrides.ServerAddress,
				RequestTimeout: overrides.RequestTimeout,
			},
			Workers:      Workers{IdleTimeout: overrides.IdleTimeout},
			JSONFilePath: overrides.ConfigPath,
		}).
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Workers: ClientWorkers{IdleTimeout: cfg.Workers.IdleTimeout},
	}

	return clientCfg, clientCfg.validate()
}
