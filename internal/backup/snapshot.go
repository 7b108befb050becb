// Package backup exports and imports a user's profile and logs.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/planner"
)

// Version is the snapshot format written by Export.
const Version = 1

// Snapshot errors.
var (
	ErrInvalidSnapshot    = errors.New("invalid snapshot")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// Snapshot is a portable copy of a user's data.
type Snapshot struct {
	Version    int                 `json:"version"`
	ExportedAt models.Timestamp    `json:"exportedAt"`
	Profile    *planner.RawProfile `json:"profile"`
	Workouts   []models.Workout    `json:"workouts"`
	BodyLog    []models.BodyEntry  `json:"bodyLog"`
}

// wireSnapshot accepts both the current layout and the legacy one,
// where logs were nested under "logs" and no version was written.
type wireSnapshot struct {
	Version    *int                `json:"version"`
	ExportedAt models.Timestamp    `json:"exportedAt"`
	Profile    *planner.RawProfile `json:"profile"`
	Workouts   []json.RawMessage   `json:"workouts"`
	BodyLog    []json.RawMessage   `json:"bodyLog"`
	Logs       *struct {
		Workouts []json.RawMessage `json:"workouts"`
		Body     []json.RawMessage `json:"body"`
	} `json:"logs"`
}

// Decoded is a migrated snapshot plus what was lost on the way.
type Decoded struct {
	Snapshot      Snapshot
	SourceVersion int
	Dropped       int
}

// Decode parses data and migrates it to the current Version.
// Rows that cannot be decoded are dropped and counted.
func Decode(data []byte) (*Decoded, error) {
	var wire wireSnapshot
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	source := 0
	if wire.Version != nil {
		source = *wire.Version
	}
	if source < 0 || source > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, source)
	}

	workouts, bodyLog := wire.Workouts, wire.BodyLog
	if wire.Logs != nil {
		if workouts == nil {
			workouts = wire.Logs.Workouts
		}
		if bodyLog == nil {
			bodyLog = wire.Logs.Body
		}
	}

	out := &Decoded{
		SourceVersion: source,
		Snapshot: Snapshot{
			Version:    Version,
			ExportedAt: wire.ExportedAt,
			Profile:    wire.Profile,
		},
	}
	out.Snapshot.Workouts, out.Dropped = decodeRows[models.Workout](workouts, out.Dropped)
	out.Snapshot.BodyLog, out.Dropped = decodeRows[models.BodyEntry](bodyLog, out.Dropped)
	return out, nil
}

func decodeRows[T any](rows []json.RawMessage, dropped int) ([]T, int) {
	out := make([]T, 0, len(rows))
	for _, raw := range rows {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			dropped++
			continue
		}
		out = append(out, v)
	}
	return out, dropped
}
