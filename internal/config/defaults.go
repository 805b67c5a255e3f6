package config

import "time"

// Defaults applied when no other source sets a field.
const (
	DefaultPasswordHashCost = 10
	DefaultTokenIssuer      = "secure-vault"
	DefaultTokenDuration    = 24 * time.Hour
	DefaultVersion          = "dev"
	DefaultKDFIterations    = 600000
	DefaultTOTPIssuer       = "SecureVault"

	DefaultHTTPAddress    = "localhost:8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultLoginRateLimit = 0.2
	DefaultLoginBurst     = 5

	DefaultAdapterAddress = "http://localhost:8080"
	DefaultIdleTimeout    = 5 * time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordHashCost: DefaultPasswordHashCost,
			TokenIssuer:      DefaultTokenIssuer,
			TokenDuration:    DefaultTokenDuration,
			Version:          DefaultVersion,
			KDFIterations:    DefaultKDFIterations,
			TOTPIssuer:       DefaultTOTPIssuer,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			LoginRateLimit: DefaultLoginRateLimit,
			LoginBurst:     DefaultLoginBurst,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			IdleTimeout: DefaultIdleTimeout,
		},
	}
}
