package storage

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func item(id string) Item {
	return Item{"id": &types.AttributeValueMemberS{Value: id}}
}

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, BookingsTable, item("a")))

	got, err := store.Get(ctx, BookingsTable, "a")
	assert.NoError(t, err)
	assert.Equal(t, item("a"), got)
}

func TestMemoryStore_GetMissingItem(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), BookingsTable, "missing")

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMemoryStore_PutRequiresID(t *testing.T) {
	store := NewMemoryStore()

	err := store.Put(context.Background(), BookingsTable, Item{})

	assert.Error(t, err)
}

func TestMemoryStore_ScanUnknownTableIsEmpty(t *testing.T) {
	store := NewMemoryStore()

	items, err := store.Scan(context.Background(), "never-written")

	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryStore_DeleteThenGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	assert.NoError(t, store.Put(ctx, RoomsTable, item("r1")))

	assert.NoError(t, store.Delete(ctx, RoomsTable, "r1"))

	_, err := store.Get(ctx, RoomsTable, "r1")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
