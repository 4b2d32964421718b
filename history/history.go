// Package history bridges the locally buffered submissions and the remote
// store. The buffer is the last line of durability: a submission that could
// not reach the backend must survive here until a sync pushes it out.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fundicaobk/equipcheck/client"
	"github.com/fundicaobk/equipcheck/models"
	"github.com/fundicaobk/equipcheck/store"
)

// ErrInvalidFormat reports a snapshot whose top-level JSON value is not an
// array.
var ErrInvalidFormat = errors.New("history: snapshot is not a JSON array")

// Service accumulates submission records locally and pushes them to the
// remote client in bulk.
type Service struct {
	store  *store.Store
	client *client.Client
	log    *zap.Logger
}

// NewService builds the history service over the embedded store and the
// remote client.
func NewService(st *store.Store, cl *client.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, client: cl, log: log}
}

// RecordLocally appends the submission to the local buffer as a
// denormalized history record and returns it. A failed write propagates;
// swallowing it here would silently lose the operator's inspection.
func (s *Service) RecordLocally(c *models.Checklist) (*models.ChecklistHistory, error) {
	record := models.HistoryFromChecklist(uuid.NewString(), c, time.Now())
	if err := s.store.AppendChecklist(record); err != nil {
		return nil, fmt.Errorf("recording checklist locally: %w", err)
	}
	return &record, nil
}

// Records returns the full local buffer in insertion order.
func (s *Service) Records() ([]models.ChecklistHistory, error) {
	return store.GetAll[models.ChecklistHistory](s.store, store.CollectionChecklists)
}

// Clear drops the local buffer.
func (s *Service) Clear() error {
	return s.store.ClearChecklists()
}

// Restore appends imported snapshot records to the local buffer.
func (s *Service) Restore(records []models.ChecklistHistory) error {
	for _, record := range records {
		if err := s.store.AppendChecklist(record); err != nil {
			return fmt.Errorf("restoring snapshot record %s: %w", record.ID, err)
		}
	}
	return nil
}

// SyncWithRemote pushes the full local buffer to the backend and returns
// how many records were sent. The buffer is left intact on success:
// re-sending already-synced records is preferred over losing unsynced ones
// if a push partially failed, and the backend tolerates duplicates.
func (s *Service) SyncWithRemote(ctx context.Context) (int, error) {
	records, err := s.Records()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := s.client.PushUnsyncedHistory(ctx, records); err != nil {
		return 0, fmt.Errorf("pushing local history: %w", err)
	}
	s.log.Info("local history synced", zap.Int("records", len(records)))
	return len(records), nil
}

// ExportSnapshot serializes records as indented JSON, the transportable
// snapshot format the import side expects.
func ExportSnapshot(records []models.ChecklistHistory, w io.Writer) error {
	if records == nil {
		records = []models.ChecklistHistory{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SnapshotFileName names an export after its day, matching the files older
// clients produced.
func SnapshotFileName(now time.Time) string {
	return fmt.Sprintf("checklist_export_%s.json", now.Format("2006-01-02"))
}

// WriteSnapshotFile exports the records to a dated file in dir and returns
// its path.
func WriteSnapshotFile(records []models.ChecklistHistory, dir string, now time.Time) (string, error) {
	path := dir + string(os.PathSeparator) + SnapshotFileName(now)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := ExportSnapshot(records, f); err != nil {
		return "", err
	}
	return path, nil
}

// ImportSnapshot parses a previously exported snapshot. Any top-level
// value other than an array is rejected with ErrInvalidFormat.
func ImportSnapshot(r io.Reader) ([]models.ChecklistHistory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := firstNonSpace(data)
	if trimmed != '[' {
		return nil, ErrInvalidFormat
	}
	var records []models.ChecklistHistory
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return records, nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b
		}
	}
	return 0
}
