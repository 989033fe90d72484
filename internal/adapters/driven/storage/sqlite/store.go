package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vondel-labs/begrip-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
)

// DefaultTTL is how long a cached result set stays valid. Definitional
// sources change slowly, so a day is a comfortable default.
const DefaultTTL = 24 * time.Hour

// Ensure Store implements the interface.
var _ driven.LookupCache = (*Store)(nil)

// Store is a SQLite-backed lookup cache. Result sets are stored as JSON
// blobs keyed by the lookup cache key, with a per-row expiry.
type Store struct {
	db   *sql.DB
	path string
	ttl  time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewStore creates a new SQLite cache at the specified data directory.
// If dataDir is empty, defaults to ~/.begrip/data/cache.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".begrip", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		ttl:  DefaultTTL,
		now:  time.Now,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SetTTL overrides the default cache entry lifetime.
func (s *Store) SetTTL(ttl time.Duration) {
	s.ttl = ttl
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached result set for the key. Expired entries count
// as a miss and are removed opportunistically.
func (s *Store) Get(ctx context.Context, key string) ([]domain.LookupResult, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT results, expires_at FROM lookup_cache WHERE key = ?
	`, key)

	var resultsJSON string
	var expiresAt time.Time
	if err := row.Scan(&resultsJSON, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scanning cache entry: %w", err)
	}

	if s.now().After(expiresAt) {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM lookup_cache WHERE key = ?", key); err != nil {
			return nil, false, fmt.Errorf("evicting expired entry: %w", err)
		}
		return nil, false, nil
	}

	var results []domain.LookupResult
	if err := json.Unmarshal([]byte(resultsJSON), &results); err != nil {
		return nil, false, fmt.Errorf("unmarshaling cached results: %w", err)
	}

	return results, true, nil
}

// Put stores the result set under the key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, results []domain.LookupResult) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}

	now := s.now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lookup_cache (key, results, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			results = excluded.results,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at
	`, key, string(resultsJSON), now, now.Add(s.ttl))

	if err != nil {
		return fmt.Errorf("saving cache entry: %w", err)
	}
	return nil
}

// Prune removes all expired entries and returns how many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM lookup_cache WHERE expires_at < ?", s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned rows: %w", err)
	}
	return n, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
