package flasher

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds configuration for the sparse copy engine
type Config struct {
	// SourceExtensions lists the recognized uncompressed image extensions
	SourceExtensions []string `mapstructure:"source_extensions"`

	// CompressedExtensions lists image extensions that are recognized but
	// not yet supported
	CompressedExtensions []string `mapstructure:"compressed_extensions"`

	// DescriptorSuffix is appended to the full source filename to locate
	// the block-map descriptor next to the image
	DescriptorSuffix string `mapstructure:"descriptor_suffix"`

	// MaxBufferSize caps the working buffer in bytes
	MaxBufferSize uint64 `mapstructure:"max_buffer_size"`
}

// DefaultMaxBufferSize caps the working buffer at 8 MiB.
const DefaultMaxBufferSize = 8 * 1024 * 1024

// bufferBlocks is the preferred working buffer size in blocks, before the
// MaxBufferSize cap applies.
const bufferBlocks = 2048

// LoadConfig loads flasher configuration using Viper
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("bmap-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.bmap")
	v.AddConfigPath("/etc/bmap")

	// Set defaults
	v.SetDefault("source_extensions", []string{".wic"})
	v.SetDefault("compressed_extensions", []string{".wic.gz"})
	v.SetDefault("descriptor_suffix", ".bmap")
	v.SetDefault("max_buffer_size", DefaultMaxBufferSize)

	// Allow environment variables
	v.SetEnvPrefix("BMAP")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the built-in configuration without consulting any
// config file or environment.
func DefaultConfig() *Config {
	return &Config{
		SourceExtensions:     []string{".wic"},
		CompressedExtensions: []string{".wic.gz"},
		DescriptorSuffix:     ".bmap",
		MaxBufferSize:        DefaultMaxBufferSize,
	}
}
