package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ConversionStats summarizes an e-Stat conversion run.
type ConversionStats struct {
	RowsRead    int
	RowsWritten int
	MinCodeLen  int
	MaxCodeLen  int
}

// ConvertEStat turns an e-Stat occupation classification download into the
// code,name,description catalog format. The first line of the download is a
// title and the second is the header; only the first three columns are used.
func ConvertEStat(r io.Reader, w io.Writer) (*ConversionStats, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("%w: failed to read title row: %w", ErrDataLoad, err)
	}
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header row: %w", ErrDataLoad, err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("%w: expected at least 3 columns, got %d", ErrDataLoad, len(header))
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(requiredCatalogColumns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	stats := &ConversionStats{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read row %d: %w", ErrDataLoad, stats.RowsRead+1, err)
		}
		stats.RowsRead++

		code := codeAt(record, 0)
		name := fieldAt(record, 1)
		description := fieldAt(record, 2)

		if code == "" || name == "" || strings.HasPrefix(name, "※") {
			continue
		}

		if description != "" {
			description = name + "。" + description
		} else {
			description = name
		}

		if err := writer.Write([]string{code, name, description}); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}

		stats.RowsWritten++
		codeLen := len([]rune(code))
		if stats.MinCodeLen == 0 || codeLen < stats.MinCodeLen {
			stats.MinCodeLen = codeLen
		}
		if codeLen > stats.MaxCodeLen {
			stats.MaxCodeLen = codeLen
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	return stats, nil
}
