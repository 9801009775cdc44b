package hlc

import (
	"fmt"
	"os"
	"time"

	"github.com/paularlott/hlc/codec"
	"github.com/paularlott/hlc/compression"
	"github.com/paularlott/hlc/encryption"

	"gopkg.in/yaml.v3"
)

type Config struct {
	NodeID          string           // NodeID is the identifier used by Clock.Local, "" to generate a new one
	MaxDrift        time.Duration    // MaxDrift is the largest allowed difference between the clock and an observed or remote wall time, compared exactly rather than in whole minutes so 61s exceeds 1m
	StoreShardCount int              // StoreShardCount is the number of lock shards in the default store, must be a power of 2, 1 for a single lock
	Store           Store            // Store holds the per node state, nil to create a MemoryStore
	WallClock       func() time.Time // WallClock supplies the current wall time, defaults to time.Now
	Logger          Logger           // Logger to use, defaults to a NullLogger

	MsgCodec      codec.Serializer       // MsgCodec is the serializer used for envelopes
	Compressor    compression.Compressor // Compressor for envelopes, nil to disable compression
	Cipher        encryption.Cipher      // Cipher for envelopes, nil to disable encryption
	EncryptionKey []byte                 // Encryption key, 16, 24 or 32 bytes for AES and 32 bytes for XChaCha20
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		NodeID:          "",
		MaxDrift:        1 * time.Minute,
		StoreShardCount: 16,
		WallClock:       time.Now,
		Logger:          NewNullLogger(),
		MsgCodec:        codec.NewVmihailencoMsgpackCodec(),
	}
}

// MergeDefault merges the default config with the given config to ensure all fields are set
func (c *Config) MergeDefault() *Config {
	defaultConfig := DefaultConfig()
	if c.MaxDrift == 0 {
		c.MaxDrift = defaultConfig.MaxDrift
	}
	if c.StoreShardCount == 0 {
		c.StoreShardCount = defaultConfig.StoreShardCount
	}
	if c.WallClock == nil {
		c.WallClock = defaultConfig.WallClock
	}
	if c.Logger == nil {
		c.Logger = defaultConfig.Logger
	}
	if c.MsgCodec == nil {
		c.MsgCodec = defaultConfig.MsgCodec
	}

	return c
}

// Validate checks the settings that can't be defaulted
func (c *Config) Validate() error {
	if c.MaxDrift < 0 {
		return fmt.Errorf("max drift must not be negative, got %s", c.MaxDrift)
	}
	if c.StoreShardCount < 1 || c.StoreShardCount&(c.StoreShardCount-1) != 0 {
		return fmt.Errorf("store shard count must be a power of 2, got %d", c.StoreShardCount)
	}
	if c.Cipher != nil && len(c.EncryptionKey) == 0 {
		return fmt.Errorf("cipher %s configured without an encryption key", c.Cipher.Name())
	}
	return nil
}

type fileConfig struct {
	NodeID          string `yaml:"node_id"`
	MaxDrift        string `yaml:"max_drift"`
	StoreShardCount int    `yaml:"store_shard_count"`
	Codec           string `yaml:"codec"`
	Compression     string `yaml:"compression"`
	Cipher          string `yaml:"cipher"`
	EncryptionKey   string `yaml:"encryption_key"`
}

// LoadConfigFile reads a YAML configuration file on top of the defaults
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration on top of the defaults
func ParseConfig(data []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.NodeID = fc.NodeID
	if fc.StoreShardCount != 0 {
		cfg.StoreShardCount = fc.StoreShardCount
	}

	if fc.MaxDrift != "" {
		d, err := time.ParseDuration(fc.MaxDrift)
		if err != nil {
			return nil, fmt.Errorf("max_drift: %w", err)
		}
		cfg.MaxDrift = d
	}

	if fc.Codec != "" {
		s, err := codec.ByName(fc.Codec)
		if err != nil {
			return nil, err
		}
		cfg.MsgCodec = s
	}

	if fc.Compression != "" {
		comp, err := compression.ByName(fc.Compression)
		if err != nil {
			return nil, err
		}
		cfg.Compressor = comp
	}

	if fc.Cipher != "" {
		cipher, err := encryption.ByName(fc.Cipher)
		if err != nil {
			return nil, err
		}
		cfg.Cipher = cipher
		cfg.EncryptionKey = []byte(fc.EncryptionKey)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
