package clients

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibolab/fibbot/config"
)

func TestNewHyperliquidClientRejectsBadKeys(t *testing.T) {
	_, err := NewHyperliquidClient("", config.DefaultHyperliquidAPIURL)
	require.Error(t, err, "empty key")

	_, err = NewHyperliquidClient("not-hex", config.DefaultHyperliquidAPIURL)
	require.Error(t, err, "non-hex key")

	_, err = NewHyperliquidClient("abcd", config.DefaultHyperliquidAPIURL)
	require.Error(t, err, "key too short")
}

func TestNewHyperliquidClientDerivesAddress(t *testing.T) {
	// any valid non-zero secp256k1 scalar works; construction is offline
	keyHex := strings.Repeat("01", 32)

	for _, key := range []string{keyHex, "0x" + keyHex} {
		client, err := NewHyperliquidClient(key, config.DefaultHyperliquidAPIURL)
		require.NoError(t, err, "key %s", key)
		require.NotNil(t, client.Info())

		addr := client.AccountAddress()
		assert.True(t, strings.HasPrefix(addr, "0x"), "address %s", addr)
		assert.Len(t, addr, 42)
	}
}
