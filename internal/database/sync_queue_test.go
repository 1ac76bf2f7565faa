package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncQueueLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	task := &models.SyncTask{
		TaskType:  "booking_created",
		BookingID: 1,
		Payload:   `{"booking_id":1}`,
		Status:    "pending",
	}
	err := db.CreateSyncTask(ctx, task)
	require.NoError(t, err)
	assert.NotZero(t, task.ID)

	pending, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "booking_created", pending[0].TaskType)

	err = db.UpdateSyncTaskStatus(ctx, task.ID, "completed", "", nil)
	require.NoError(t, err)

	pending, err = db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSyncQueueRetry(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	task := &models.SyncTask{
		TaskType:  "booking_status_changed",
		BookingID: 2,
		Payload:   `{"booking_id":2}`,
		Status:    "pending",
	}
	require.NoError(t, db.CreateSyncTask(ctx, task))

	// Отложенная повторная попытка не видна до срока
	later := time.Now().UTC().Add(time.Hour)
	err := db.UpdateSyncTaskStatus(ctx, task.ID, "retry", "sheets unavailable", &later)
	require.NoError(t, err)

	pending, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Срок прошёл — задача снова в выборке, счётчик попыток увеличен
	past := time.Now().UTC().Add(-time.Minute)
	err = db.UpdateSyncTaskStatus(ctx, task.ID, "retry", "sheets unavailable", &past)
	require.NoError(t, err)

	pending, err = db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].RetryCount)
	require.NotNil(t, pending[0].LastError)
	assert.Equal(t, "sheets unavailable", *pending[0].LastError)

	err = db.UpdateSyncTaskStatus(ctx, task.ID, "failed", "gave up", nil)
	require.NoError(t, err)

	failed, err := db.GetFailedSyncTasks(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.NotNil(t, failed[0].ProcessedAt)
}
