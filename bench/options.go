package bench

import (
	"fmt"

	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/options"
)

// Config holds the measurement settings.
type Config struct {
	compression format.CompressionType
	background  uint32
}

func newConfig() *Config {
	return &Config{compression: format.CompressionNone}
}

// Option configures Measure and Run.
type Option = options.Option[*Config]

// WithCompression seals the encoded stream in an SPZ1 envelope using c.
// CompressionNone, the default, measures the raw SPCO/SPCS stream.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		if !c.IsValid() {
			return fmt.Errorf("invalid compression type: %s", c)
		}
		cfg.compression = c

		return nil
	})
}

// WithBackground sets the value treated as empty when building the matrix.
func WithBackground(v uint32) Option {
	return options.NoError(func(cfg *Config) {
		cfg.background = v
	})
}
