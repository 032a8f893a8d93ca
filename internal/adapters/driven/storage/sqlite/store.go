package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

const (
	currentFile    = "CURRENT"
	generationsDir = "generations"
	dbExt          = ".db"
)

// Meta table keys.
const (
	metaGeneration     = "generation"
	metaEmbeddingModel = "embedding_model"
	metaDimensions     = "dimensions"
	metaDocuments      = "documents"
	metaChunks         = "chunks"
	metaCreatedAt      = "created_at"
)

// Store manages vector store generations under one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, generationsDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Begin starts a new generation under a fresh identity. Nothing is
// visible to readers until Publish.
func (s *Store) Begin(ctx context.Context, embeddingModel string, dimensions int) (driven.VectorStoreBuilder, error) {
	generation := uuid.NewString()
	path := s.generationPath(generation)

	db, err := openWritable(path)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, db, migrations.FS); err != nil {
		db.Close()
		os.Remove(path)
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Debug("vector store: building generation %s", generation)

	return &builder{
		store:          s,
		db:             db,
		path:           path,
		generation:     generation,
		embeddingModel: embeddingModel,
		dimensions:     dimensions,
	}, nil
}

// OpenCurrent opens the published generation read-only.
func (s *Store) OpenCurrent(ctx context.Context) (driven.VectorReader, error) {
	// A publish can retire the generation between reading the pointer and
	// opening the file; re-reading the pointer once covers that window.
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		generation, err := s.current()
		if err != nil {
			return nil, err
		}

		path := s.generationPath(generation)
		if _, err := os.Stat(path); err != nil {
			lastErr = fmt.Errorf("%w: generation %s: %w", domain.ErrStoreUnavailable, generation, err)
			continue
		}

		r, err := openReader(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}
		return r, nil
	}
	return nil, lastErr
}

// Current returns the published generation identity.
func (s *Store) Current() (string, error) {
	return s.current()
}

func (s *Store) current() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, currentFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: no index has been built in %s", domain.ErrStoreUnavailable, s.dir)
	}
	if err != nil {
		return "", fmt.Errorf("%w: reading pointer: %w", domain.ErrStoreUnavailable, err)
	}
	generation := strings.TrimSpace(string(data))
	if generation == "" {
		return "", fmt.Errorf("%w: empty pointer in %s", domain.ErrStoreUnavailable, s.dir)
	}
	return generation, nil
}

// swap atomically points CURRENT at generation and returns the previous one.
func (s *Store) swap(generation string) (string, error) {
	previous, err := s.current()
	if err != nil {
		previous = ""
	}

	tmp := filepath.Join(s.dir, currentFile+".tmp")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating pointer: %w", err)
	}
	if _, err := f.WriteString(generation + "\n"); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("writing pointer: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("syncing pointer: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("closing pointer: %w", err)
	}

	if err := os.Rename(tmp, filepath.Join(s.dir, currentFile)); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("publishing pointer: %w", err)
	}
	return previous, nil
}

// retire removes a generation file that is no longer current.
func (s *Store) retire(generation string) {
	if generation == "" {
		return
	}
	path := s.generationPath(generation)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("vector store: could not remove retired generation %s: %v", generation, err)
		return
	}
	logger.Debug("vector store: retired generation %s", generation)
}

func (s *Store) generationPath(generation string) string {
	return filepath.Join(s.dir, generationsDir, generation+dbExt)
}

// openWritable creates a new database file.
// Rollback journaling keeps each generation a single file once closed.
func openWritable(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// migrate runs all pending migrations.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
