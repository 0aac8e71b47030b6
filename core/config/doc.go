// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use, when one exists, and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
//	type AppConfig struct {
//		Store   string `env:"NOTES_STORE" envDefault:"memory"`
//		Metrics bool   `env:"METRICS_ENABLED" envDefault:"true"`
//	}
//
//	func main() {
//		var app AppConfig
//		if err := config.Load(&app); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure, for startup code.
//		config.MustLoad(&server.Config{})
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process; later calls copy
// the cached value into the destination. Different types are cached
// independently. A failed load is not cached.
package config
