package evolution

import (
	"database/sql"
	"encoding/json"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/variantlab/evolve-go/pkg/errors"
)

// SQLiteStore implements SessionStore using SQLite as the backend, for
// embedders that need sessions to survive a process restart without running a
// full database.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	initialized sync.Once
}

// NewSQLiteStore creates a new SQLite-backed session store.
// The path parameter specifies the database file location.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to open SQLite database"),
			errors.Fields{"path": path},
		)
	}

	store := &SQLiteStore{
		db:   db,
		path: path,
	}
	if err := store.ensureInitialized(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureInitialized() error {
	var initErr error
	s.initialized.Do(func() {
		// Enable WAL mode for better concurrency
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			initErr = errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode")
			return
		}

		query := `
        CREATE TABLE IF NOT EXISTS evolution_sessions (
            id TEXT PRIMARY KEY,
            data TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );

        CREATE INDEX IF NOT EXISTS idx_evolution_sessions_created_at
        ON evolution_sessions(created_at);
        `

		if _, err := s.db.Exec(query); err != nil {
			initErr = errors.WithFields(
				errors.Wrap(err, errors.StorageFailed, "failed to initialize database"),
				errors.Fields{"query": query},
			)
			return
		}
	})
	return initErr
}

// Get implements SessionStore.
func (s *SQLiteStore) Get(id string) (*Session, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRow("SELECT data FROM evolution_sessions WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errors.WithFields(
			errors.New(errors.SessionNotFound, "session not found"),
			errors.Fields{"session_id": id},
		)
	}
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to retrieve session"),
			errors.Fields{"session_id": id},
		)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to unmarshal session"),
			errors.Fields{"session_id": id},
		)
	}
	return &session, nil
}

// Put implements SessionStore.
func (s *SQLiteStore) Put(session *Session) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "failed to marshal session"),
			errors.Fields{"session_id": session.ID},
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
    INSERT INTO evolution_sessions (id, data, updated_at)
    VALUES (?, ?, CURRENT_TIMESTAMP)
    ON CONFLICT(id) DO UPDATE SET
        data = excluded.data,
        updated_at = CURRENT_TIMESTAMP
    `

	if _, err := s.db.Exec(query, session.ID, string(data)); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to store session"),
			errors.Fields{"session_id": session.ID},
		)
	}
	return nil
}

// List implements SessionStore, returning sessions in creation order.
func (s *SQLiteStore) List() ([]*Session, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT data FROM evolution_sessions ORDER BY created_at")
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to list sessions")
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan session row")
		}
		var session Session
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to unmarshal session")
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "error iterating session rows")
	}
	return sessions, nil
}

// Delete implements SessionStore.
func (s *SQLiteStore) Delete(id string) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM evolution_sessions WHERE id = ?", id)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to delete session"),
			errors.Fields{"session_id": id},
		)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to get affected rows count")
	}
	if affected == 0 {
		return errors.WithFields(
			errors.New(errors.SessionNotFound, "session not found"),
			errors.Fields{"session_id": id},
		)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to close database connection")
	}
	return nil
}
