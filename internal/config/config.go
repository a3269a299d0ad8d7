package config

import (
	"errors"
	"fmt"
)

const (
	DefaultReadChunkSize     = 4096
	DefaultDecodeBufferSize  = 8192
	DefaultMaxChipsetEntries = 2
	DefaultOutputWidth       = 75

	maxBufferSize  = 16 << 20
	minOutputWidth = 40
	maxOutputWidth = 240
)

// DefaultCandidateOffsets are the GUID-relative LZMA header offsets.
var DefaultCandidateOffsets = []int{0x30, 0x3C}

// Config is the user configuration.
type Config struct {
	Scan   ScanConfig   `koanf:"scan"`
	Output OutputConfig `koanf:"output"`
}

// ScanConfig tunes the image scan.
type ScanConfig struct {
	ReadChunkSize     int   `koanf:"read_chunk_size"`     // Max bytes per read from the compressed payload
	DecodeBufferSize  int   `koanf:"decode_buffer_size"`  // Decompressed bytes fed to the extractor per step
	CandidateOffsets  []int `koanf:"candidate_offsets"`   // LZMA header offsets after the metadata GUID
	MaxChipsetEntries int   `koanf:"max_chipset_entries"` // Chipset records reported per image
}

// OutputConfig tunes the console report.
type OutputConfig struct {
	Width int `koanf:"width"` // Report width in columns
}

// Default returns a Config with every value set to its default.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Scan.ReadChunkSize == 0 {
		cfg.Scan.ReadChunkSize = DefaultReadChunkSize
	}
	if cfg.Scan.DecodeBufferSize == 0 {
		cfg.Scan.DecodeBufferSize = DefaultDecodeBufferSize
	}
	if len(cfg.Scan.CandidateOffsets) == 0 {
		cfg.Scan.CandidateOffsets = append([]int(nil), DefaultCandidateOffsets...)
	}
	if cfg.Scan.MaxChipsetEntries == 0 {
		cfg.Scan.MaxChipsetEntries = DefaultMaxChipsetEntries
	}
	if cfg.Output.Width == 0 {
		cfg.Output.Width = DefaultOutputWidth
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Scan.ReadChunkSize < 1 || c.Scan.ReadChunkSize > maxBufferSize {
		errs = append(errs, fmt.Errorf("scan.read_chunk_size must be between 1 and %d, got %d", maxBufferSize, c.Scan.ReadChunkSize))
	}
	if c.Scan.DecodeBufferSize < 1 || c.Scan.DecodeBufferSize > maxBufferSize {
		errs = append(errs, fmt.Errorf("scan.decode_buffer_size must be between 1 and %d, got %d", maxBufferSize, c.Scan.DecodeBufferSize))
	}
	for i, off := range c.Scan.CandidateOffsets {
		if off < 0 {
			errs = append(errs, fmt.Errorf("scan.candidate_offsets[%d] must not be negative, got %d", i, off))
		}
	}
	if c.Scan.MaxChipsetEntries < 1 {
		errs = append(errs, fmt.Errorf("scan.max_chipset_entries must be at least 1, got %d", c.Scan.MaxChipsetEntries))
	}
	if c.Output.Width < minOutputWidth || c.Output.Width > maxOutputWidth {
		errs = append(errs, fmt.Errorf("output.width must be between %d and %d, got %d", minOutputWidth, maxOutputWidth, c.Output.Width))
	}

	return errors.Join(errs...)
}
