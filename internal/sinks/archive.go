package sinks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"rockcoast/internal/sims/rockcoast"
)

// ErrNoRun is returned when snapshots arrive before BeginRun.
var ErrNoRun = errors.New("archive: no run started")

// Archive stores runs and their snapshots in SQLite.
type Archive struct {
	mu   sync.Mutex
	conn *sqlx.DB
	log  *slog.Logger
	run  int64
}

// RunRecord is one archived run.
type RunRecord struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Config  string `db:"config_yaml"`
	Started string `db:"started"`
}

type snapshotRow struct {
	Step       int     `db:"step"`
	Time       float64 `db:"time"`
	SeaLevel   float64 `db:"sea_level"`
	TidalRange float64 `db:"tidal_range"`
	Z          string  `db:"z_json"`
	X          string  `db:"x_json"`
}

// OpenArchive opens or creates the archive at path.
func OpenArchive(path string, log *slog.Logger) (*Archive, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	a := &Archive{conn: conn, log: log}
	if err := a.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return a, nil
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		config_yaml TEXT NOT NULL,
		started TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		step INTEGER NOT NULL,
		time REAL NOT NULL,
		sea_level REAL NOT NULL,
		tidal_range REAL NOT NULL,
		z_json TEXT NOT NULL,
		x_json TEXT NOT NULL,
		PRIMARY KEY (run_id, step)
	);`
	_, err := a.conn.Exec(schema)
	return err
}

// BeginRun records a new run and directs following snapshots to it.
func (a *Archive) BeginRun(name string, cfg rockcoast.Config) (int64, error) {
	doc, err := cfg.YAML()
	if err != nil {
		return 0, fmt.Errorf("encode config: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	res, err := a.conn.Exec(`INSERT INTO runs (name, config_yaml, started) VALUES (?, ?, ?)`,
		name, string(doc), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	a.run = id
	a.log.Info("archive run started", "run", id, "name", name)
	return id, nil
}

// WriteSnapshot satisfies rockcoast.SnapshotSink.
func (a *Archive) WriteSnapshot(snap rockcoast.Snapshot) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.run == 0 {
		return ErrNoRun
	}
	z, err := json.Marshal(snap.Z)
	if err != nil {
		return err
	}
	x, err := json.Marshal(snap.X)
	if err != nil {
		return err
	}
	_, err = a.conn.Exec(`INSERT OR REPLACE INTO snapshots
		(run_id, step, time, sea_level, tidal_range, z_json, x_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.run, snap.Step, snap.Time, snap.SeaLevel, snap.TidalRange, string(z), string(x))
	if err != nil {
		return fmt.Errorf("insert snapshot %d: %w", snap.Step, err)
	}
	return nil
}

// Runs lists the archived runs, oldest first.
func (a *Archive) Runs() ([]RunRecord, error) {
	var runs []RunRecord
	if err := a.conn.Select(&runs, `SELECT id, name, config_yaml, started FROM runs ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	return runs, nil
}

// Snapshots loads the snapshots of run in step order.
func (a *Archive) Snapshots(run int64) ([]rockcoast.Snapshot, error) {
	var rows []snapshotRow
	err := a.conn.Select(&rows, `SELECT step, time, sea_level, tidal_range, z_json, x_json
		FROM snapshots WHERE run_id = ? ORDER BY step`, run)
	if err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}
	out := make([]rockcoast.Snapshot, 0, len(rows))
	for _, r := range rows {
		s := rockcoast.Snapshot{Step: r.Step, Time: r.Time, SeaLevel: r.SeaLevel, TidalRange: r.TidalRange}
		if err := json.Unmarshal([]byte(r.Z), &s.Z); err != nil {
			return nil, fmt.Errorf("decode z of step %d: %w", r.Step, err)
		}
		if err := json.Unmarshal([]byte(r.X), &s.X); err != nil {
			return nil, fmt.Errorf("decode x of step %d: %w", r.Step, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Close closes the database connection.
func (a *Archive) Close(context.Context) error {
	return a.conn.Close()
}
