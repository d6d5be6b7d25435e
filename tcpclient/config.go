package tcpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/arloliu/go-sensorlink/logger"
)

// Default configuration values.
const (
	DefaultConnectTimeout = 2 * time.Second  // bound on the whole connect handshake
	DefaultKeepAlive      = 30 * time.Second // TCP keep-alive period of the default dialer
	DefaultBufferBits     = 16               // ring buffer of 64 KiB
)

// Ring buffer size limits, as capacity exponents.
const (
	MinBufferBits = 4  // 16 bytes
	MaxBufferBits = 24 // 16 MiB
)

// Dialer opens the TCP connection for Open. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Config holds the configuration of a Client.
type Config struct {
	connectTimeout time.Duration
	keepAlive      time.Duration
	bufferBits     uint
	dialer         Dialer

	logger logger.Logger
}

// NewConfig creates a Config from the defaults and the given options,
// applied in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		connectTimeout: DefaultConnectTimeout,
		keepAlive:      DefaultKeepAlive,
		bufferBits:     DefaultBufferBits,
		logger:         logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.dialer == nil {
		cfg.dialer = &net.Dialer{KeepAlive: cfg.keepAlive}
	}

	return cfg, nil
}

// ConnectTimeout returns the bound on a single Open.
func (cfg *Config) ConnectTimeout() time.Duration { return cfg.connectTimeout }

// KeepAlive returns the keep-alive period used by the default dialer.
func (cfg *Config) KeepAlive() time.Duration { return cfg.keepAlive }

// BufferBits returns the ring buffer capacity exponent.
func (cfg *Config) BufferBits() uint { return cfg.bufferBits }

// BufferSize returns the ring buffer capacity in bytes.
func (cfg *Config) BufferSize() int { return 1 << cfg.bufferBits }

// Dialer returns the dialer used by Open.
func (cfg *Config) Dialer() Dialer { return cfg.dialer }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// --- Option ---

// Option is a functional option for configuring a Client.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithConnectTimeout sets the bound on the connect handshake.
func WithConnectTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("tcpclient: connect timeout must be positive")
		}
		cfg.connectTimeout = d

		return nil
	})
}

// WithKeepAlive sets the TCP keep-alive period of the default dialer.
// A negative value disables keep-alive. It has no effect with WithDialer.
func WithKeepAlive(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		cfg.keepAlive = d

		return nil
	})
}

// WithBufferBits sets the ring buffer capacity to 1<<bits bytes.
// The non-blocking drain never receives more than this per read.
func WithBufferBits(bits uint) Option {
	return optFunc(func(cfg *Config) error {
		if bits < MinBufferBits || bits > MaxBufferBits {
			return fmt.Errorf("tcpclient: buffer bits %d out of range [%d, %d]", bits, MinBufferBits, MaxBufferBits)
		}
		cfg.bufferBits = bits

		return nil
	})
}

// WithDialer replaces the default *net.Dialer.
func WithDialer(d Dialer) Option {
	return optFunc(func(cfg *Config) error {
		if d == nil {
			return errors.New("tcpclient: dialer must not be nil")
		}
		cfg.dialer = d

		return nil
	})
}

// WithLogger sets the logger for the client.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("tcpclient: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
