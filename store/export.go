package store

import (
	"os"
	"time"

	"moodlog/client"

	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a portable copy of the cached mood history. Msgpack keeps
// the file compact (dates repeat heavily in JSON) and round-trips the
// float scores without formatting drift.
type Snapshot struct {
	DeviceID   string              `msgpack:"device_id"`
	ExportedAt time.Time           `msgpack:"exported_at"`
	Records    []client.MoodRecord `msgpack:"records"`
}

// Export writes the current cache contents to path as a msgpack
// snapshot.
func (s *Store) Export(path string) (*Snapshot, error) {
	records, err := s.History()
	if err != nil {
		return nil, err
	}
	deviceID, err := s.DeviceID()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		DeviceID:   deviceID,
		ExportedAt: time.Now(),
		Records:    records,
	}

	raw, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, serr.Wrap(err, "failed to encode snapshot")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return nil, serr.Wrap(err, "failed to write snapshot file")
	}
	return snap, nil
}

// Import reads a snapshot file and replaces the cached history with its
// records. The snapshot's own device ID is returned so callers can log
// where the data came from.
func (s *Store) Import(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, serr.Wrap(err, "failed to read snapshot file")
	}

	var snap Snapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, serr.Wrap(err, "failed to decode snapshot")
	}

	if err := s.ReplaceHistory(snap.Records); err != nil {
		return nil, err
	}
	return &snap, nil
}
