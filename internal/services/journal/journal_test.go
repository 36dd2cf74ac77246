package journal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/gowal"

	"github.com/fibolab/fibbot/internal/domain"
)

func TestJournalRecordRoundTrip(t *testing.T) {
	baseDir := t.TempDir()
	pair := domain.Pair{From: "BTC", To: "USDT"}

	j, err := New(baseDir, pair)
	require.NoError(t, err)

	event := domain.TradeEvent{
		Kind:        domain.TradeBuy,
		Pair:        pair,
		Price:       decimal.NewFromInt(95),
		QuoteAmount: decimal.NewFromInt(1000),
		BaseAmount:  decimal.RequireFromString("10.515789"),
		Time:        time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, j.Record(event))
	require.NoError(t, j.Close())

	// reopen the WAL directly and check the appended record
	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              baseDir + "/" + pair.String(),
		Prefix:           "log_",
		SegmentThreshold: walSegmentThreshold,
		MaxSegments:      walMaxSegments,
		IsInSyncDiskMode: true,
	})
	require.NoError(t, err)
	defer wal.Close()

	var records []Record
	for msg := range wal.Iterator() {
		require.True(t, strings.HasPrefix(msg.Key, recordKeyPrefix), "unexpected key %s", msg.Key)

		var rec Record
		require.NoError(t, json.Unmarshal(msg.Value, &rec))
		records = append(records, rec)
	}

	require.Len(t, records, 1)
	rec := records[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "buy", rec.Kind)
	assert.Equal(t, "BTC_USDT", rec.Pair)
	assert.Equal(t, "95", rec.Price)
	assert.Equal(t, "1000", rec.QuoteAmount)
	assert.Equal(t, "10.515789", rec.BaseAmount)
	assert.True(t, rec.Time.Equal(event.Time))
}

func TestJournalAppendsSequentially(t *testing.T) {
	baseDir := t.TempDir()
	pair := domain.Pair{From: "ETH", To: "USDT"}

	j, err := New(baseDir, pair)
	require.NoError(t, err)
	defer j.Close()

	for i := 1; i <= 3; i++ {
		event := domain.TradeEvent{
			Kind:        domain.TradeSell,
			Pair:        pair,
			Price:       decimal.NewFromInt(int64(i * 100)),
			QuoteAmount: decimal.NewFromInt(1000),
			BaseAmount:  decimal.NewFromInt(1),
			Time:        time.Now(),
		}
		require.NoError(t, j.Record(event))
	}

	assert.Equal(t, uint64(3), j.wal.CurrentIndex())
}
