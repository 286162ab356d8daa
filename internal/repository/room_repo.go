package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/storage"
)

type RoomRepository interface {
	Save(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FindAll(ctx context.Context) ([]models.Room, error)
	FindByHotelID(ctx context.Context, hotelID string) ([]models.Room, error)
	Delete(ctx context.Context, id string) error
}

type roomRepository struct {
	store storage.Store
}

func NewRoomRepository(store storage.Store) RoomRepository {
	return &roomRepository{store: store}
}

func (r *roomRepository) Save(ctx context.Context, room *models.Room) error {
	item, err := attributevalue.MarshalMap(room)
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}
	return r.store.Put(ctx, storage.RoomsTable, item)
}

func (r *roomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	item, err := r.store.Get(ctx, storage.RoomsTable, id)
	if err != nil {
		return nil, err
	}
	var room models.Room
	if err := attributevalue.UnmarshalMap(item, &room); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", id, err)
	}
	return &room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]models.Room, error) {
	items, err := r.store.Scan(ctx, storage.RoomsTable)
	if err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(items))
	for _, item := range items {
		var room models.Room
		if err := attributevalue.UnmarshalMap(item, &room); err != nil {
			return nil, fmt.Errorf("unmarshal room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (r *roomRepository) FindByHotelID(ctx context.Context, hotelID string) ([]models.Room, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(all))
	for _, room := range all {
		if room.HotelID == hotelID {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, storage.RoomsTable, id)
}
