// Package preset stores named loop layouts in SQLite.
package preset

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coilcalc/model"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("preset: not found")

// Preset is a saved set of loops together with the grid they were viewed on.
type Preset struct {
	Name   string              `json:"name"`
	Loops  []model.CurrentLoop `json:"loops"`
	XRange model.Range         `json:"x_range"`
	ZRange model.Range         `json:"z_range"`
}

type presetRow struct {
	Name      string  `db:"name"`
	LoopsJSON string  `db:"loops_json"`
	XMin      float64 `db:"x_min"`
	XMax      float64 `db:"x_max"`
	XCount    int     `db:"x_count"`
	ZMin      float64 `db:"z_min"`
	ZMax      float64 `db:"z_max"`
	ZCount    int     `db:"z_count"`
	UpdatedAt int64   `db:"updated_at"`
}

type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the preset database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS presets (
		name TEXT PRIMARY KEY,
		loops_json TEXT NOT NULL,
		x_min REAL NOT NULL,
		x_max REAL NOT NULL,
		x_count INTEGER NOT NULL,
		z_min REAL NOT NULL,
		z_max REAL NOT NULL,
		z_count INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save inserts p or replaces the preset with the same name.
func (s *Store) Save(p Preset) error {
	if p.Name == "" {
		return errors.New("preset: empty name")
	}
	loopsJSON, err := json.Marshal(p.Loops)
	if err != nil {
		return fmt.Errorf("marshal loops: %w", err)
	}
	row := presetRow{
		Name:      p.Name,
		LoopsJSON: string(loopsJSON),
		XMin:      p.XRange.Min,
		XMax:      p.XRange.Max,
		XCount:    p.XRange.Count,
		ZMin:      p.ZRange.Min,
		ZMax:      p.ZRange.Max,
		ZCount:    p.ZRange.Count,
		UpdatedAt: time.Now().Unix(),
	}
	_, err = s.conn.NamedExec(`
	INSERT INTO presets (name, loops_json, x_min, x_max, x_count, z_min, z_max, z_count, updated_at)
	VALUES (:name, :loops_json, :x_min, :x_max, :x_count, :z_min, :z_max, :z_count, :updated_at)
	ON CONFLICT(name) DO UPDATE SET
		loops_json = excluded.loops_json,
		x_min = excluded.x_min,
		x_max = excluded.x_max,
		x_count = excluded.x_count,
		z_min = excluded.z_min,
		z_max = excluded.z_max,
		z_count = excluded.z_count,
		updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("save preset %q: %w", p.Name, err)
	}
	return nil
}

func (s *Store) Load(name string) (Preset, error) {
	var row presetRow
	err := s.conn.Get(&row, `SELECT * FROM presets WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("load preset %q: %w", name, err)
	}

	var loops []model.CurrentLoop
	if err := json.Unmarshal([]byte(row.LoopsJSON), &loops); err != nil {
		return Preset{}, fmt.Errorf("unmarshal loops of %q: %w", name, err)
	}
	return Preset{
		Name:   row.Name,
		Loops:  loops,
		XRange: model.NewRange(row.XMin, row.XMax, row.XCount),
		ZRange: model.NewRange(row.ZMin, row.ZMax, row.ZCount),
	}, nil
}

// List returns the preset names in alphabetical order.
func (s *Store) List() ([]string, error) {
	names := []string{}
	if err := s.conn.Select(&names, `SELECT name FROM presets ORDER BY name`); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Store) Delete(name string) error {
	res, err := s.conn.Exec(`DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
