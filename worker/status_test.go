package worker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emanuelpaduret/alex-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	result := &models.WorkerRunResult{
		StartedAt:   time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		FinishedAt:  time.Date(2026, 3, 15, 10, 0, 2, 0, time.UTC),
		DueCount:    4,
		TaggedCount: 4,
		Success:     true,
		Owner:       "host-1234",
	}

	assert.NoError(t, writeStatusFile(path, result))

	loaded, err := ReadStatusFile(path)
	assert.NoError(t, err)
	assert.Equal(t, result.TaggedCount, loaded.TaggedCount)
	assert.Equal(t, result.Owner, loaded.Owner)
	assert.True(t, loaded.Success)
}

func TestWriteStatusFileEmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, writeStatusFile("", &models.WorkerRunResult{}))
}

func TestReadStatusFileMissing(t *testing.T) {
	_, err := ReadStatusFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
