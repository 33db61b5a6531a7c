package blockgen

import (
	"errors"
	"log/slog"
)

// ErrInvalidBaudRate indicates a negative serial baud rate.
var ErrInvalidBaudRate = errors.New("invalid serial baud rate")

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	logger         *slog.Logger
	serialBaudRate int
}

func newClientConfig() *clientConfig {
	return &clientConfig{}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithSerialBaudRate opens the serial port at the given rate in every
// sketch's setup(). Zero leaves the serial port alone.
func WithSerialBaudRate(rate int) Option {
	return func(c *clientConfig) {
		c.serialBaudRate = rate
	}
}
