package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache   sync.Map // reflect.Type -> T
	dotenv  sync.Once
	loadMu  sync.Mutex
	envFile = ".env"
)

// Load fills cfg from the environment. The first successful load of a type is
// cached and copied into cfg on later calls.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	key := reflect.TypeFor[T]()
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	dotenv.Do(loadDotenv)

	var v T
	if err := env.Parse(&v); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	cache.Store(key, v)
	*cfg = v
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}

// loadDotenv never overrides variables already set in the process environment.
// A missing or malformed file is ignored; required fields still fail Parse.
func loadDotenv() {
	_ = godotenv.Load(envFile)
}
