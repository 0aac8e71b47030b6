package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promisemux/core/config"
	"github.com/dmitrymomot/promisemux/core/server"
)

func TestNewFromConfig(t *testing.T) {
	t.Run("creates server from config with defaults", func(t *testing.T) {
		cfg := server.DefaultConfig()
		srv, err := server.NewFromConfig(cfg)

		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("applies custom config values", func(t *testing.T) {
		cfg := server.Config{
			Addr:            ":9000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    20 * time.Second,
			IdleTimeout:     30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxHeaderBytes:  2 << 20,
		}

		srv, err := server.NewFromConfig(cfg)

		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("allows overriding config values with options", func(t *testing.T) {
		cfg := server.Config{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		}

		srv, err := server.NewFromConfig(
			cfg,
			server.WithShutdownTimeout(10*time.Second),
		)

		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails without address", func(t *testing.T) {
		cfg := server.Config{
			ReadTimeout: 10 * time.Second,
		}

		srv, err := server.NewFromConfig(cfg)

		assert.ErrorIs(t, err, server.ErrMissingAddress)
		assert.Nil(t, srv)
	})

	t.Run("handles zero values in config", func(t *testing.T) {
		cfg := server.Config{
			Addr: ":8080",
		}

		srv, err := server.NewFromConfig(cfg)

		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails with only one TLS file", func(t *testing.T) {
		for _, cfg := range []server.Config{
			{Addr: ":8080", TLSCertFile: "cert.pem"},
			{Addr: ":8080", TLSKeyFile: "key.pem"},
		} {
			srv, err := server.NewFromConfig(cfg)

			assert.ErrorIs(t, err, server.ErrIncompleteTLS)
			assert.Nil(t, srv)
		}
	})

	t.Run("fails with invalid TLS files", func(t *testing.T) {
		cfg := server.Config{
			Addr:        ":8080",
			TLSCertFile: "/nonexistent/cert.pem",
			TLSKeyFile:  "/nonexistent/key.pem",
		}

		srv, err := server.NewFromConfig(cfg)

		assert.ErrorIs(t, err, server.ErrFailedLoadCert)
		assert.Nil(t, srv)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := server.DefaultConfig()

	assert.Equal(t, server.DefaultAddr, cfg.Addr)
	assert.Equal(t, server.DefaultReadHeaderTimeout, cfg.ReadHeaderTimeout)
	assert.Equal(t, server.DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, server.DefaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, server.DefaultIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, server.DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, server.DefaultMaxHeaderBytes, cfg.MaxHeaderBytes)
	assert.Empty(t, cfg.TLSCertFile)
	assert.Empty(t, cfg.TLSKeyFile)
}

func TestConfigFromEnvironment(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("HTTP_ADDR", "127.0.0.1:9999")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "3s")

	var cfg server.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, server.DefaultReadTimeout, cfg.ReadTimeout)
}

// Env defaults and DefaultConfig must not drift apart.
func TestConfigEnvDefaultsMatchDefaultConfig(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	type service struct {
		Server server.Config `envPrefix:"NOTES_"`
	}

	var svc service
	require.NoError(t, config.Load(&svc))

	want := server.DefaultConfig()
	assert.Equal(t, want, svc.Server)
}

func TestConfigServicePrefix(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	type service struct {
		Server server.Config `envPrefix:"NOTES_"`
	}
	t.Setenv("NOTES_HTTP_ADDR", "127.0.0.1:7000")
	t.Setenv("HTTP_ADDR", "127.0.0.1:1")

	var svc service
	require.NoError(t, config.Load(&svc))
	assert.Equal(t, "127.0.0.1:7000", svc.Server.Addr)
}
