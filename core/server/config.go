package server

import (
	"crypto/tls"
	"fmt"
	"time"
)

// Config holds listener settings. Tags carry no service prefix; a service
// embeds Config with envPrefix so its variables read NOTES_HTTP_ADDR and so on:
//
//	type Config struct {
//		Server server.Config `envPrefix:"NOTES_"`
//	}
type Config struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"20s"`
	MaxHeaderBytes    int           `env:"HTTP_MAX_HEADER_BYTES" envDefault:"65536"`

	// Both or neither.
	TLSCertFile string `env:"HTTP_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"HTTP_TLS_KEY_FILE"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Addr:              DefaultAddr,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ReadTimeout:       DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		MaxHeaderBytes:    DefaultMaxHeaderBytes,
	}
}

// NewFromConfig creates a Server from cfg. Zero durations and sizes keep the
// package defaults; opts are applied last and win over cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}

	cfgOpts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	return New(cfg.Addr, append(cfgOpts, opts...)...), nil
}

func (cfg Config) options() ([]Option, error) {
	var opts []Option
	for _, d := range []struct {
		v   time.Duration
		opt func(time.Duration) Option
	}{
		{cfg.ReadHeaderTimeout, WithReadHeaderTimeout},
		{cfg.ReadTimeout, WithReadTimeout},
		{cfg.WriteTimeout, WithWriteTimeout},
		{cfg.IdleTimeout, WithIdleTimeout},
		{cfg.ShutdownTimeout, WithShutdownTimeout},
	} {
		if d.v > 0 {
			opts = append(opts, d.opt(d.v))
		}
	}
	if cfg.MaxHeaderBytes > 0 {
		opts = append(opts, WithMaxHeaderBytes(cfg.MaxHeaderBytes))
	}

	switch {
	case cfg.TLSCertFile == "" && cfg.TLSKeyFile == "":
	case cfg.TLSCertFile == "" || cfg.TLSKeyFile == "":
		return nil, ErrIncompleteTLS
	default:
		cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w from %s and %s: %w", ErrFailedLoadCert, cfg.TLSCertFile, cfg.TLSKeyFile, err)
		}
		opts = append(opts, WithTLS(&tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}))
	}
	return opts, nil
}
