package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/storage"
)

type HotelRepository interface {
	Save(ctx context.Context, hotel *models.Hotel) error
	FindByID(ctx context.Context, id string) (*models.Hotel, error)
	FindAll(ctx context.Context) ([]models.Hotel, error)
	FindByCity(ctx context.Context, city string) ([]models.Hotel, error)
	FindByCountry(ctx context.Context, country string) ([]models.Hotel, error)
	Delete(ctx context.Context, id string) error
}

type hotelRepository struct {
	store storage.Store
}

func NewHotelRepository(store storage.Store) HotelRepository {
	return &hotelRepository{store: store}
}

func (r *hotelRepository) Save(ctx context.Context, hotel *models.Hotel) error {
	item, err := attributevalue.MarshalMap(hotel)
	if err != nil {
		return fmt.Errorf("marshal hotel: %w", err)
	}
	return r.store.Put(ctx, storage.HotelsTable, item)
}

func (r *hotelRepository) FindByID(ctx context.Context, id string) (*models.Hotel, error) {
	item, err := r.store.Get(ctx, storage.HotelsTable, id)
	if err != nil {
		return nil, err
	}
	var hotel models.Hotel
	if err := attributevalue.UnmarshalMap(item, &hotel); err != nil {
		return nil, fmt.Errorf("unmarshal hotel %s: %w", id, err)
	}
	return &hotel, nil
}

func (r *hotelRepository) FindAll(ctx context.Context) ([]models.Hotel, error) {
	items, err := r.store.Scan(ctx, storage.HotelsTable)
	if err != nil {
		return nil, err
	}
	hotels := make([]models.Hotel, 0, len(items))
	for _, item := range items {
		var hotel models.Hotel
		if err := attributevalue.UnmarshalMap(item, &hotel); err != nil {
			return nil, fmt.Errorf("unmarshal hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}
	return hotels, nil
}

func (r *hotelRepository) FindByCity(ctx context.Context, city string) ([]models.Hotel, error) {
	return r.findWhere(ctx, func(h models.Hotel) bool { return h.City == city })
}

func (r *hotelRepository) FindByCountry(ctx context.Context, country string) ([]models.Hotel, error) {
	return r.findWhere(ctx, func(h models.Hotel) bool { return h.Country == country })
}

func (r *hotelRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, storage.HotelsTable, id)
}

func (r *hotelRepository) findWhere(ctx context.Context, keep func(models.Hotel) bool) ([]models.Hotel, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Hotel, 0, len(all))
	for _, h := range all {
		if keep(h) {
			matched = append(matched, h)
		}
	}
	return matched, nil
}
