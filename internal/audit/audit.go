// Package audit is an optional SQLite ledger of RepairActions, enabled
// by Options.AuditDB (spec.md §12's supplemented "audit ledger"
// feature). Grounded on internal/state/store.go's sql.Open("sqlite",
// path) + schema-migration pattern (internal/state/migrations.go),
// trimmed from that package's full pipeline/run/event/artifact schema
// down to the one table jsonremedy actually needs.
package audit

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
)

const schema = `
CREATE TABLE IF NOT EXISTS repair_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	input_size INTEGER NOT NULL,
	succeeded INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS repair_actions (
	run_id INTEGER NOT NULL REFERENCES repair_runs(id),
	seq INTEGER NOT NULL,
	stage TEXT NOT NULL,
	action TEXT NOT NULL,
	position INTEGER,
	original TEXT,
	replacement TEXT
);
`

// Ledger appends RepairAction records from completed repairs to a
// SQLite database at a fixed path.
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if necessary) the ledger database at path and
// ensures its schema exists.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migrate schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record appends one repair run's action log as a new row set, inside
// a single transaction so a crash mid-write never leaves a partial run.
func (l *Ledger) Record(inputSize int64, succeeded bool, createdAtUnix int64, actions []action.Record) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("audit: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO repair_runs (input_size, succeeded, created_at) VALUES (?, ?, ?)`,
		inputSize, boolToInt(succeeded), createdAtUnix,
	)
	if err != nil {
		return fmt.Errorf("audit: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("audit: run id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO repair_actions (run_id, seq, stage, action, position, original, replacement) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("audit: prepare action insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range actions {
		var original, replacement any
		if a.Original != nil {
			original = *a.Original
		}
		if a.Replacement != nil {
			replacement = *a.Replacement
		}
		var pos any
		if a.Position != nil {
			pos = *a.Position
		}
		if _, err := stmt.Exec(runID, i, string(a.Stage), a.Action, pos, original, replacement); err != nil {
			return fmt.Errorf("audit: insert action %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// RunActions reads back one run's action log, ordered as recorded.
// Used by this package's tests; no CLI command reads the ledger back.
func (l *Ledger) RunActions(runID int64) ([]action.Record, error) {
	rows, err := l.db.Query(
		`SELECT stage, action, position, original, replacement FROM repair_actions WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("audit: query actions: %w", err)
	}
	defer rows.Close()

	var out []action.Record
	for rows.Next() {
		var stage, act string
		var pos sql.NullInt64
		var original, replacement sql.NullString
		if err := rows.Scan(&stage, &act, &pos, &original, &replacement); err != nil {
			return nil, fmt.Errorf("audit: scan action: %w", err)
		}
		rec := action.Record{Stage: action.Stage(stage), Action: act}
		if pos.Valid {
			p := int(pos.Int64)
			rec.Position = &p
		}
		if original.Valid {
			rec.Original = &original.String
		}
		if replacement.Valid {
			rec.Replacement = &replacement.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
