// Package db provides the SQLite-backed key-value store holding the signed-in user, recording
// metadata, saved scripts and local accounts as JSON values.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jwulff/prompter/internal/domain"
)

// Keys of the persisted values.
const (
	KeyCurrentUser = "currentUser"
	KeyRecordings  = "recordings"
	KeyScripts     = "scripts"
	KeyAccounts    = "accounts"
)

var (
	ErrNotFound      = errors.New("recording not found")
	ErrAccountExists = errors.New("account already exists")
)

const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

// Store provides read-write access to the prompter database.
type Store struct {
	db *sql.DB
}

// FileName is the database file inside the data directory.
const FileName = "prompter.sqlite"

// DefaultDataDir returns ~/.prompter.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".prompter"), nil
}

// PathIn returns the database path inside dataDir.
func PathIn(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps read-modify-write transactions serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CurrentSession returns the signed-in user, or nil when nobody is signed in.
func (s *Store) CurrentSession(ctx context.Context) (*domain.User, error) {
	var u domain.User
	ok, err := readKey(ctx, s.db, KeyCurrentUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

// SetCurrentSession records u as the signed-in user.
func (s *Store) SetCurrentSession(ctx context.Context, u domain.User) error {
	return writeKey(ctx, s.db, KeyCurrentUser, u)
}

// ClearSession signs the current user out.
func (s *Store) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// ListRecordings returns saved recordings, newest first.
func (s *Store) ListRecordings(ctx context.Context) ([]domain.Recording, error) {
	var recs []domain.Recording
	if _, err := readKey(ctx, s.db, KeyRecordings, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// UpsertRecording replaces the recording with the same ID, or prepends it.
func (s *Store) UpsertRecording(ctx context.Context, rec domain.Recording) error {
	return update(ctx, s, KeyRecordings, func(recs []domain.Recording) ([]domain.Recording, error) {
		for i := range recs {
			if recs[i].ID == rec.ID {
				recs[i] = rec
				return recs, nil
			}
		}
		return append([]domain.Recording{rec}, recs...), nil
	})
}

// DeleteRecording removes the recording with the given ID. Unknown IDs are ignored.
func (s *Store) DeleteRecording(ctx context.Context, id string) error {
	return update(ctx, s, KeyRecordings, func(recs []domain.Recording) ([]domain.Recording, error) {
		kept := recs[:0]
		for _, r := range recs {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		return kept, nil
	})
}

// RenameRecording sets a new title. It returns ErrNotFound, leaving the collection untouched,
// when no recording has the given ID.
func (s *Store) RenameRecording(ctx context.Context, id, title string) error {
	return update(ctx, s, KeyRecordings, func(recs []domain.Recording) ([]domain.Recording, error) {
		for i := range recs {
			if recs[i].ID == id {
				recs[i].Title = strings.TrimSpace(title)
				return recs, nil
			}
		}
		return nil, fmt.Errorf("rename %s: %w", id, ErrNotFound)
	})
}

// ListScripts returns saved scripts, newest first.
func (s *Store) ListScripts(ctx context.Context) ([]domain.Script, error) {
	var scripts []domain.Script
	if _, err := readKey(ctx, s.db, KeyScripts, &scripts); err != nil {
		return nil, err
	}
	return scripts, nil
}

// SaveScript prepends a script to the library.
func (s *Store) SaveScript(ctx context.Context, sc domain.Script) error {
	return update(ctx, s, KeyScripts, func(scripts []domain.Script) ([]domain.Script, error) {
		return append([]domain.Script{sc}, scripts...), nil
	})
}

// DeleteScript removes a script. Unknown IDs are ignored.
func (s *Store) DeleteScript(ctx context.Context, id string) error {
	return update(ctx, s, KeyScripts, func(scripts []domain.Script) ([]domain.Script, error) {
		kept := scripts[:0]
		for _, sc := range scripts {
			if sc.ID != id {
				kept = append(kept, sc)
			}
		}
		return kept, nil
	})
}

// FindAccount looks up a local account by email (case-insensitive). It returns nil when absent.
func (s *Store) FindAccount(ctx context.Context, email string) (*domain.Account, error) {
	var accounts []domain.Account
	if _, err := readKey(ctx, s.db, KeyAccounts, &accounts); err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if strings.EqualFold(a.User.Email, email) {
			return &a, nil
		}
	}
	return nil, nil
}

// AddAccount registers a new local account.
func (s *Store) AddAccount(ctx context.Context, acct domain.Account) error {
	return update(ctx, s, KeyAccounts, func(accounts []domain.Account) ([]domain.Account, error) {
		for _, a := range accounts {
			if strings.EqualFold(a.User.Email, acct.User.Email) {
				return nil, fmt.Errorf("add %s: %w", acct.User.Email, ErrAccountExists)
			}
		}
		return append(accounts, acct), nil
	})
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// readKey decodes the value under key into v. It reports false when the key is absent.
func readKey(ctx context.Context, q querier, key string, v any) (bool, error) {
	var raw string
	err := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func writeKey(ctx context.Context, q querier, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// update runs a read-modify-write of one list-valued key in a transaction. If fn fails nothing
// is written.
func update[T any](ctx context.Context, s *Store, key string, fn func([]T) ([]T, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var items []T
	if _, err := readKey(ctx, tx, key, &items); err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	if err := writeKey(ctx, tx, key, items); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}
