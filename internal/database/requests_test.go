package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRequestCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requester := createTestUser(t, db, "Requester", "req@example.com")

	request := &models.ItemRequest{
		RequesterID: requester.ID,
		Description: "need a ladder",
		Created:     time.Now().UTC(),
	}
	err := db.CreateItemRequest(ctx, request)
	require.NoError(t, err)
	assert.NotZero(t, request.ID)

	found, err := db.GetItemRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a ladder", found.Description)
	assert.Equal(t, requester.ID, found.RequesterID)

	_, err = db.GetItemRequestByID(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestItemRequestsByUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	now := time.Now().UTC()
	older := &models.ItemRequest{RequesterID: alice.ID, Description: "need a drill", Created: now.Add(-time.Hour)}
	newer := &models.ItemRequest{RequesterID: alice.ID, Description: "need a saw", Created: now}
	foreign := &models.ItemRequest{RequesterID: bob.ID, Description: "need a hammer", Created: now}
	require.NoError(t, db.CreateItemRequest(ctx, older))
	require.NoError(t, db.CreateItemRequest(ctx, newer))
	require.NoError(t, db.CreateItemRequest(ctx, foreign))

	// Свои заявки, свежие первыми
	mine, err := db.GetItemRequestsByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)
	assert.Equal(t, older.ID, mine[1].ID)

	// Чужие заявки для Боба — обе заявки Алисы
	others, err := db.GetOtherUsersItemRequests(ctx, bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, others, 2)

	page, err := db.GetOtherUsersItemRequests(ctx, bob.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, older.ID, page[0].ID)
}
