// Package filesystem loads the documentation corpus from a local directory.
package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

// DefaultExtensions are loaded when none are configured.
var DefaultExtensions = []string{".md"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader reads documents recursively from a root directory.
type Loader struct {
	root        string
	extensions  map[string]bool
	normalisers map[string]driven.Normaliser
}

// NewLoader creates a loader for root accepting the given extensions.
// Extensions are matched case-insensitively, with or without a leading dot.
// Files whose extension has a normaliser are converted to text first;
// the rest are read verbatim.
func NewLoader(root string, extensions []string, normalisers ...driven.Normaliser) *Loader {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	byExt := make(map[string]driven.Normaliser)
	for _, n := range normalisers {
		for _, ext := range n.Extensions() {
			byExt[strings.ToLower(ext)] = n
		}
	}
	return &Loader{root: root, extensions: exts, normalisers: byExt}
}

// Root returns the directory being read.
func (l *Loader) Root() string {
	return l.root
}

// Load walks the root and returns every matching document, ordered by path.
// A missing root yields no documents.
func (l *Loader) Load(ctx context.Context) ([]domain.Document, error) {
	if _, err := os.Stat(l.root); os.IsNotExist(err) {
		logger.Debug("loader: docs root %s does not exist", l.root)
		return nil, nil
	}

	var docs []domain.Document
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != l.root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) || !l.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		doc, err := l.readDocument(ctx, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading documents from %s: %w", l.root, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })
	logger.Debug("loader: %d documents under %s", len(docs), l.root)
	return docs, nil
}

func (l *Loader) readDocument(ctx context.Context, path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return domain.Document{}, fmt.Errorf("%s is not valid UTF-8", path)
	}

	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		rel = path
	}
	source := filepath.ToSlash(rel)

	content := string(data)
	if n, ok := l.normalisers[strings.ToLower(filepath.Ext(path))]; ok {
		content, err = n.Normalise(ctx, source, data)
		if err != nil {
			return domain.Document{}, fmt.Errorf("normalising %s: %w", source, err)
		}
	}

	return domain.Document{
		ID:      uuid.New().String(),
		Source:  source,
		Content: content,
	}, nil
}

// isHidden reports whether a file or directory name is hidden.
// "." and ".." are not hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
