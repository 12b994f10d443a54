// Package store persists story progress, attempt history and player settings in SQLite
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoSession is returned by writes that need an open session
var ErrNoSession = errors.New("no active session")

// Store is a single-connection SQLite database
type Store struct {
	db      *sql.DB
	session string
	now     func() time.Time
}

// Attempt is one confirm evaluation
type Attempt struct {
	Session  string
	Scene    int
	Passed   bool
	Pulls    int
	Placed   []string
	Required []string
	At       time.Time
}

// Settings are the player preferences kept across runs
type Settings struct {
	Master float64
	Music  float64
	SFX    float64
	Muted  bool
}

// Open creates or opens the database at path, creating parent directories
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT,
			start_scene INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			scene INTEGER NOT NULL,
			passed INTEGER NOT NULL,
			pulls INTEGER NOT NULL,
			placed_json TEXT NOT NULL,
			required_json TEXT NOT NULL,
			at TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_scene ON attempts(scene);`,
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Session returns the open session id, empty when none
func (s *Store) Session() string {
	return s.session
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// StartSession opens a new play session beginning at startScene
func (s *Store) StartSession(ctx context.Context, startScene int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, start_scene) VALUES (?, ?, ?)`,
		id, s.stamp(), startScene)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	s.session = id
	return id, nil
}

// EndSession closes the open session
func (s *Store) EndSession(ctx context.Context, completed bool) error {
	if s.session == "" {
		return ErrNoSession
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ?, completed = ? WHERE id = ?`,
		s.stamp(), boolInt(completed), s.session)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	s.session = ""
	return nil
}

// RecordAttempt appends an attempt to the open session
func (s *Store) RecordAttempt(ctx context.Context, a Attempt) error {
	if s.session == "" {
		return ErrNoSession
	}
	placed, err := json.Marshal(nonNil(a.Placed))
	if err != nil {
		return fmt.Errorf("encode placed: %w", err)
	}
	required, err := json.Marshal(nonNil(a.Required))
	if err != nil {
		return fmt.Errorf("encode required: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO attempts (session_id, seq, scene, passed, pulls, placed_json, required_json, at)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM attempts WHERE session_id = ?), ?, ?, ?, ?, ?, ?)`,
		s.session, s.session, a.Scene, boolInt(a.Passed), a.Pulls, string(placed), string(required), s.stamp())
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// Attempts returns a session's attempts in order
func (s *Store) Attempts(ctx context.Context, session string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT scene, passed, pulls, placed_json, required_json, at
		 FROM attempts WHERE session_id = ? ORDER BY seq`, session)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a                      Attempt
			passed                 int
			placed, required, when string
		)
		if err := rows.Scan(&a.Scene, &passed, &a.Pulls, &placed, &required, &when); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Session = session
		a.Passed = passed != 0
		if err := json.Unmarshal([]byte(placed), &a.Placed); err != nil {
			return nil, fmt.Errorf("decode placed: %w", err)
		}
		if err := json.Unmarshal([]byte(required), &a.Required); err != nil {
			return nil, fmt.Errorf("decode required: %w", err)
		}
		if a.At, err = time.Parse(time.RFC3339Nano, when); err != nil {
			return nil, fmt.Errorf("decode time: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SessionCount returns how many sessions were ever started
func (s *Store) SessionCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

const (
	keyProgress = "progress.scene"
	keyMaster   = "volume.master"
	keyMusic    = "volume.music"
	keySFX      = "volume.sfx"
	keyMuted    = "audio.muted"
)

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

// SaveProgress remembers the scene to resume from
func (s *Store) SaveProgress(ctx context.Context, scene int) error {
	return s.put(ctx, keyProgress, strconv.Itoa(scene))
}

// LastProgress returns the saved resume scene; false when there is none
func (s *Store) LastProgress(ctx context.Context) (int, bool, error) {
	v, ok, err := s.get(ctx, keyProgress)
	if err != nil || !ok {
		return 0, false, err
	}
	scene, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("progress %q: %w", v, err)
	}
	return scene, true, nil
}

// ClearProgress forgets the resume scene
func (s *Store) ClearProgress(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, keyProgress); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// LoadSettings returns saved preferences, filling absent keys from defaults
func (s *Store) LoadSettings(ctx context.Context, defaults Settings) (Settings, error) {
	out := defaults
	floats := []struct {
		key string
		dst *float64
	}{
		{keyMaster, &out.Master},
		{keyMusic, &out.Music},
		{keySFX, &out.SFX},
	}
	for _, f := range floats {
		v, ok, err := s.get(ctx, f.key)
		if err != nil {
			return defaults, err
		}
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return defaults, fmt.Errorf("setting %s=%q: %w", f.key, v, err)
		}
		*f.dst = x
	}
	v, ok, err := s.get(ctx, keyMuted)
	if err != nil {
		return defaults, err
	}
	if ok {
		out.Muted = v == "1"
	}
	return out, nil
}

// SaveSettings stores every preference in one transaction
func (s *Store) SaveSettings(ctx context.Context, st Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	values := map[string]string{
		keyMaster: strconv.FormatFloat(st.Master, 'f', -1, 64),
		keyMusic:  strconv.FormatFloat(st.Music, 'f', -1, 64),
		keySFX:    strconv.FormatFloat(st.SFX, 'f', -1, 64),
		keyMuted:  strconv.Itoa(boolInt(st.Muted)),
	}
	for k, v := range values {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
