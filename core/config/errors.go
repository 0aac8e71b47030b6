package config

import "errors"

var (
	ErrNilConfig = errors.New("config: nil destination")
	ErrParse     = errors.New("config: failed to parse environment")
)
