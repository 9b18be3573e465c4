package core

import (
	"fmt"
	"math"
)

// ProcessorConfig defines the host-facing processing settings: the sample
// rate and the largest block the host promises to deliver.
type ProcessorConfig struct {
	SampleRate   float64
	MaxBlockSize int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used by the command-line tools.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:   48000,
		MaxBlockSize: 512,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithMaxBlockSize sets the block size hint. Non-positive values are ignored.
func WithMaxBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.MaxBlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate reports whether the configuration can drive a processor.
func (c ProcessorConfig) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("core: sample rate must be positive and finite: %v", c.SampleRate)
	}

	if c.MaxBlockSize <= 0 {
		return fmt.Errorf("core: max block size must be positive: %d", c.MaxBlockSize)
	}

	return nil
}
