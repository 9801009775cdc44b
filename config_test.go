package hlc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, time.Minute, config.MaxDrift)
	assert.Equal(t, 16, config.StoreShardCount)
	assert.NotNil(t, config.WallClock)
	assert.NotNil(t, config.Logger)
	assert.Equal(t, "msgpack", config.MsgCodec.Name())
	assert.Nil(t, config.Compressor)
	assert.Nil(t, config.Cipher)
	assert.NoError(t, config.Validate())
}

func TestConfigMergeDefault(t *testing.T) {
	config := &Config{MaxDrift: 5 * time.Second}
	config.MergeDefault()

	assert.Equal(t, 5*time.Second, config.MaxDrift)
	assert.Equal(t, 16, config.StoreShardCount)
	assert.NotNil(t, config.WallClock)
	assert.NotNil(t, config.Logger)
	assert.NotNil(t, config.MsgCodec)
}

func TestConfigValidate(t *testing.T) {
	config := DefaultConfig()
	config.MaxDrift = -time.Second
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.StoreShardCount = 6
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Cipher = nil
	config.EncryptionKey = nil
	assert.NoError(t, config.Validate())
}

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(`
node_id: node-alpha
max_drift: 30s
store_shard_count: 4
codec: shamaton-msgpack
compression: snappy
cipher: aes-gcm
encryption_key: 0123456789abcdef
`))
	require.NoError(t, err)

	assert.Equal(t, "node-alpha", config.NodeID)
	assert.Equal(t, 30*time.Second, config.MaxDrift)
	assert.Equal(t, 4, config.StoreShardCount)
	assert.Equal(t, "shamaton-msgpack", config.MsgCodec.Name())
	assert.Equal(t, "snappy", config.Compressor.Name())
	assert.Equal(t, "aes-gcm", config.Cipher.Name())
	assert.Equal(t, []byte("0123456789abcdef"), config.EncryptionKey)
}

func TestParseConfigErrors(t *testing.T) {
	inputs := []string{
		"max_drift: soon",
		"codec: xml",
		"compression: lz4",
		"cipher: rot13\nencryption_key: x",
		"cipher: aes-gcm",
		"store_shard_count: 5",
		"node_id: [",
	}

	for _, input := range inputs {
		_, err := ParseConfig([]byte(input))
		assert.Error(t, err, input)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hlc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("node_id: n1\nmax_drift: 2m\n"), 0o600))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "n1", config.NodeID)
	assert.Equal(t, 2*time.Minute, config.MaxDrift)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
