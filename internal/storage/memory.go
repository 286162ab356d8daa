package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryStore is an in-process Store used by tests and local runs without a
// DynamoDB endpoint. Tables spring into existence on first Put; scanning a
// table that was never written returns empty, like the real adapter.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]map[string]Item)}
}

func (s *MemoryStore) Get(ctx context.Context, table, id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.tables[table][id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *MemoryStore) Put(ctx context.Context, table string, item Item) error {
	id, err := itemID(item)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables[table] == nil {
		s.tables[table] = make(map[string]Item)
	}
	s.tables[table][id] = item
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tables[table], id)
	return nil
}

func (s *MemoryStore) Scan(ctx context.Context, table string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.tables[table]
	items := make([]Item, 0, len(rows))
	for _, item := range rows {
		items = append(items, item)
	}
	return items, nil
}

func itemID(item Item) (string, error) {
	av, ok := item["id"]
	if !ok {
		return "", fmt.Errorf("item has no id attribute")
	}
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("item id must be a string attribute, got %T", av)
	}
	return s.Value, nil
}
