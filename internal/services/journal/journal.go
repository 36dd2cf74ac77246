// Package journal persists executed trade events to an append-only WAL so an
// operator can audit a simulation after the fact. Records are write-only:
// nothing in the bot reads them back to restore state.
package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/fibolab/fibbot/internal/domain"
)

const (
	recordKeyPrefix     = "trade_"
	walSegmentThreshold = 1000
	walMaxSegments      = 100
	walDirPermissions   = 0o755
)

// Record is the serialized form of an executed trade.
type Record struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Pair        string    `json:"pair"`
	Price       string    `json:"price"`
	QuoteAmount string    `json:"quote_amount"`
	BaseAmount  string    `json:"base_amount"`
	Time        time.Time `json:"time"`
}

// Journal appends trade events to a per-pair WAL directory.
type Journal struct {
	wal *gowal.Wal
}

// New opens (or creates) the journal for the given pair under baseDir.
func New(baseDir string, pair domain.Pair) (*Journal, error) {
	walDir := filepath.Join(baseDir, pair.String())
	if err := os.MkdirAll(walDir, walDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to ensure journal directory %s", walDir)
	}

	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              walDir,
		Prefix:           "log_",
		SegmentThreshold: walSegmentThreshold,
		MaxSegments:      walMaxSegments,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open trade journal WAL")
	}

	return &Journal{wal: wal}, nil
}

// Record appends one executed trade event.
func (j *Journal) Record(event domain.TradeEvent) error {
	rec := Record{
		ID:          uuid.NewString(),
		Kind:        event.Kind.String(),
		Pair:        event.Pair.String(),
		Price:       event.Price.String(),
		QuoteAmount: event.QuoteAmount.String(),
		BaseAmount:  event.BaseAmount.String(),
		Time:        event.Time,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "failed to marshal trade record")
	}

	nextIndex := j.wal.CurrentIndex() + 1
	return j.wal.Write(nextIndex, recordKeyPrefix+rec.ID, data)
}

// Close releases the underlying WAL.
func (j *Journal) Close() error {
	return j.wal.Close()
}
