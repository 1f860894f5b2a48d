package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"alfredoptarigan/occupation-classifier/internal/models"
)

// Catalog is the read-only, ordered list of occupation entries. Index i of the
// catalog and index i of the embedding cache always name the same entry.
type Catalog struct {
	entries []models.OccupationEntry
	source  string
}

const fallbackSource = "builtin"

var requiredCatalogColumns = []string{"code", "name", "description"}

func NewCatalog(entries []models.OccupationEntry, source string) *Catalog {
	cp := make([]models.OccupationEntry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp, source: source}
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) Entry(i int) models.OccupationEntry {
	return c.entries[i]
}

// Entries returns a copy of the catalog entries in catalog order.
func (c *Catalog) Entries() []models.OccupationEntry {
	cp := make([]models.OccupationEntry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Source is the file path the catalog was read from, or "builtin".
func (c *Catalog) Source() string {
	return c.source
}

func (c *Catalog) IsFallback() bool {
	return c.source == fallbackSource
}

// Lookup returns the first entry with the given code.
func (c *Catalog) Lookup(code string) (models.OccupationEntry, bool) {
	for _, e := range c.entries {
		if e.Code == code {
			return e, true
		}
	}
	return models.OccupationEntry{}, false
}

// DuplicateCodes lists codes that occur more than once, in first-seen order.
func (c *Catalog) DuplicateCodes() []string {
	seen := make(map[string]int, len(c.entries))
	var dups []string
	for _, e := range c.entries {
		seen[e.Code]++
		if seen[e.Code] == 2 {
			dups = append(dups, e.Code)
		}
	}
	return dups
}

// LoadCatalog reads the catalog from a CSV file with code,name,description
// columns. An empty or unreadable path yields the built-in fallback catalog.
// A readable file that is malformed fails with ErrDataLoad.
func LoadCatalog(path string, logger *zap.Logger) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		logger.Info("📚 No catalog path configured, using built-in catalog")
		return FallbackCatalog(), nil
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		logger.Warn("⚠️ Catalog file unreadable, using built-in catalog",
			zap.String("path", path), zap.Error(err))
		return FallbackCatalog(), nil
	}
	defer f.Close()

	entries, skipped, err := ParseCatalogCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	catalog := NewCatalog(entries, path)
	logger.Info("📚 Catalog loaded",
		zap.String("path", path),
		zap.Int("entries", catalog.Len()),
		zap.Int("skipped_rows", skipped))

	if dups := catalog.DuplicateCodes(); len(dups) > 0 {
		logger.Warn("⚠️ Catalog contains duplicate codes", zap.Strings("codes", dups))
	}

	return catalog, nil
}

// ParseCatalogCSV parses catalog rows. Rows missing any required field are
// skipped and counted; a missing required column fails with ErrDataLoad.
func ParseCatalogCSV(r io.Reader) ([]models.OccupationEntry, int, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("%w: catalog is empty", ErrDataLoad)
		}
		return nil, 0, fmt.Errorf("%w: failed to read header: %w", ErrDataLoad, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(normalizeKey(col))] = i
	}
	for _, col := range requiredCatalogColumns {
		if _, ok := index[col]; !ok {
			return nil, 0, fmt.Errorf("%w: missing required column %q", ErrDataLoad, col)
		}
	}

	var entries []models.OccupationEntry
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: failed to read row: %w", ErrDataLoad, err)
		}

		entry := models.OccupationEntry{
			Code:        codeAt(record, index["code"]),
			Name:        fieldAt(record, index["name"]),
			Description: fieldAt(record, index["description"]),
		}
		if entry.Code == "" || entry.Name == "" || entry.Description == "" {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, skipped, fmt.Errorf("%w: catalog has no usable rows", ErrDataLoad)
	}

	return entries, skipped, nil
}

// fieldAt returns the trimmed field; the text itself is kept as written.
func fieldAt(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// codeAt is fieldAt with NFKC applied, so full-width digits in codes match
// their ASCII form.
func codeAt(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return normalizeKey(record[i])
}

func normalizeKey(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
