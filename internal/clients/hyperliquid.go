// Package clients builds exchange SDK clients that need more setup than a
// plain constructor call.
package clients

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	hyperliquid "github.com/sonirico/go-hyperliquid"
)

// HyperliquidClient wraps the Hyperliquid SDK exchange. The SDK exposes its
// Info (public market data) client only through an Exchange, which is
// constructed from an ECDSA key; the price lookups themselves are
// unauthenticated.
type HyperliquidClient struct {
	exchange    *hyperliquid.Exchange
	accountAddr string
}

// NewHyperliquidClient derives the account address from the private key and
// builds the SDK exchange. Meta and spot metadata are fetched lazily by the
// SDK on first use, so construction does not touch the network.
func NewHyperliquidClient(privateKeyHex, baseURL string) (*HyperliquidClient, error) {
	if privateKeyHex == "" {
		return nil, errors.New("hyperliquid private key is required")
	}

	key := privateKeyHex
	if len(key) >= 2 && (key[:2] == "0x" || key[:2] == "0X") {
		key = key[2:]
	}

	privateKey, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hyperliquid private key")
	}

	pub, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("error casting public key to ECDSA")
	}
	accountAddr := crypto.PubkeyToAddress(*pub).Hex()

	exchange := hyperliquid.NewExchange(
		context.Background(),
		privateKey,
		baseURL,
		nil,
		"",
		accountAddr,
		nil,
	)

	return &HyperliquidClient{exchange: exchange, accountAddr: accountAddr}, nil
}

// Info returns the public-data client used by the pricer.
func (c *HyperliquidClient) Info() *hyperliquid.Info {
	return c.exchange.Info()
}

// AccountAddress returns the address derived from the private key.
func (c *HyperliquidClient) AccountAddress() string {
	return c.accountAddr
}
