package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertEStat(t *testing.T) {
	input := strings.Join([]string{
		"\ufeff日本標準職業分類（令和4年改定）",
		"分類コード,分類項目名,説明及び内容例示,備考",
		"A,管理的職業従事者,事業経営方針の決定に従事するもの,",
		"011,管理的公務員,,",
		"021,会社役員,\"代表取締役,取締役\",",
		",空コード,説明,",
		"099,※注記,注記のみ,",
		"100,,名称なし,",
	}, "\n") + "\n"

	var out bytes.Buffer
	stats, err := ConvertEStat(strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Equal(t, &ConversionStats{RowsRead: 6, RowsWritten: 3, MinCodeLen: 1, MaxCodeLen: 3}, stats)

	entries, skipped, err := ParseCatalogCSV(&out)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, entries, 3)

	assert.Equal(t, "A", entries[0].Code)
	assert.Equal(t, "管理的職業従事者。事業経営方針の決定に従事するもの", entries[0].Description)
	assert.Equal(t, "011", entries[1].Code)
	assert.Equal(t, "管理的公務員", entries[1].Description)
	assert.Equal(t, "会社役員。代表取締役,取締役", entries[2].Description)
}

func TestConvertEStat_BadInput(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := ConvertEStat(strings.NewReader(""), &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrDataLoad)
	})

	t.Run("too few columns", func(t *testing.T) {
		_, err := ConvertEStat(strings.NewReader("title\ncode,name\n"), &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrDataLoad)
	})
}
