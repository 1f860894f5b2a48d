package repositories

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/occupation-classifier/internal/models"
)

// dryRunDB renders SQL without connecting to a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func insertSQL(t *testing.T, record *models.ClassificationRecord) string {
	t.Helper()
	return dryRunDB(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Create(record)
	})
}

func TestCreate_PersistsInCandidatesFlag(t *testing.T) {
	tests := []struct {
		name         string
		inCandidates bool
		want         string
		notWant      string
	}{
		{"code outside candidates", false, "false", "true"},
		{"code among candidates", true, "true", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &models.ClassificationRecord{
				ID:           uuid.New(),
				UserInput:    "消防士です",
				Code:         "99",
				Name:         "分類不能の職業",
				Reason:       "該当なし",
				InCandidates: tt.inCandidates,
				CreatedAt:    time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
			}

			sql := insertSQL(t, record)
			require.Contains(t, sql, `"in_candidates"`)

			values := sql[strings.Index(sql, "VALUES"):]
			assert.Contains(t, values, tt.want)
			assert.NotContains(t, values, tt.notWant)
		})
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0))
	assert.Equal(t, 20, ClampLimit(-5))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, 50, ClampLimit(50))
	assert.Equal(t, 100, ClampLimit(1000))
}
