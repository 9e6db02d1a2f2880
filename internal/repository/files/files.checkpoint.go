// FilePath: internal/repository/files/files.checkpoint.go
package files

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

const dateLayout = "2006-01-02"

// checkpointRecord is the on-disk shape: {"date": "YYYY-MM-DD"}
type checkpointRecord struct {
	Date string `json:"date"`
}

// CheckpointStore persists the date of the last successfully ingested day
// as a single JSON record. Writes replace the file atomically (temp file in
// the same directory, then rename) so a crashed run can never leave a
// half-written checkpoint behind.
type CheckpointStore struct {
	path string
}

func NewCheckpointStore(path string) (*CheckpointStore, error) {
	if path == "" {
		return nil, errors.NewInternalError("checkpoint path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.NewStoreError("failed to create checkpoint directory", err)
	}
	return &CheckpointStore{path: path}, nil
}

// Read returns the checkpointed date. found is false when no checkpoint
// exists yet, which the ingestion job treats as "no prior run".
func (s *CheckpointStore) Read(ctx context.Context) (time.Time, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, errors.NewStoreError("failed to read checkpoint", err)
	}

	var record checkpointRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return time.Time{}, false, errors.NewStoreError("checkpoint file is corrupt", err)
	}

	date, err := time.ParseInLocation(dateLayout, record.Date, time.UTC)
	if err != nil {
		return time.Time{}, false, errors.NewStoreError(
			fmt.Sprintf("checkpoint date %q is not YYYY-MM-DD", record.Date), err)
	}
	return date, true, nil
}

// Write replaces the checkpoint with the given date. The time component is
// discarded; the checkpoint is a calendar date.
func (s *CheckpointStore) Write(ctx context.Context, date time.Time) error {
	record := checkpointRecord{Date: date.UTC().Format(dateLayout)}
	data, err := json.Marshal(record)
	if err != nil {
		return errors.NewInternalError("failed to encode checkpoint", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "checkpoint-*.json")
	if err != nil {
		return errors.NewStoreError("failed to create checkpoint temp file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewStoreError("failed to write checkpoint temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.NewStoreError("failed to sync checkpoint temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStoreError("failed to close checkpoint temp file", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.NewStoreError("failed to replace checkpoint file", err)
	}

	nuts.L.Infof("[Checkpoint] Advanced to %s", record.Date)
	return nil
}
