// Package artifact saves generated IaC files to the output directory.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.ArtifactWriter = (*Writer)(nil)

// timestampLayout names files <tool>_YYYYmmdd_HHMMSS.<ext>.
const timestampLayout = "20060102_150405"

// Writer writes artifacts into a single directory.
type Writer struct {
	dir string
	now func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock replaces the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a writer for dir. The directory is created on first save.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Save writes code to a new timestamped file and returns its path.
// A second save within the same second gets a numeric suffix.
func (w *Writer) Save(tool domain.Tool, code string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	base := fmt.Sprintf("%s_%s", tool, w.now().Format(timestampLayout))
	ext := "." + tool.Extension()

	for i := 0; ; i++ {
		name := base + ext
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", base, i, ext)
		}
		path := filepath.Join(w.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create artifact: %w", err)
		}

		if _, err := f.WriteString(code); err != nil {
			f.Close()
			return "", fmt.Errorf("write artifact: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close artifact: %w", err)
		}
		return path, nil
	}
}
