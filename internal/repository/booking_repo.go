package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/johnboyce/otel-motel/internal/availability"
	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/storage"
)

// BookingRepository persists bookings and answers the domain queries. The
// store has no secondary indexes, so every query is a full scan filtered in
// memory; acceptable at this data volume, documented as a limitation.
type BookingRepository interface {
	Save(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	FindByRoomID(ctx context.Context, roomID string) ([]models.Booking, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]models.Booking, error)
	FindUpcoming(ctx context.Context, asOf models.Date) ([]models.Booking, error)
	FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut models.Date) ([]models.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingRepository struct {
	store storage.Store
}

func NewBookingRepository(store storage.Store) BookingRepository {
	return &bookingRepository{store: store}
}

func (r *bookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	item, err := attributevalue.MarshalMap(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}
	return r.store.Put(ctx, storage.BookingsTable, item)
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	item, err := r.store.Get(ctx, storage.BookingsTable, id)
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := attributevalue.UnmarshalMap(item, &booking); err != nil {
		return nil, fmt.Errorf("unmarshal booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	items, err := r.store.Scan(ctx, storage.BookingsTable)
	if err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, 0, len(items))
	for _, item := range items {
		var booking models.Booking
		if err := attributevalue.UnmarshalMap(item, &booking); err != nil {
			return nil, fmt.Errorf("unmarshal booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByRoomID(ctx context.Context, roomID string) ([]models.Booking, error) {
	return r.findWhere(ctx, func(b models.Booking) bool {
		return b.RoomID == roomID
	})
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.findWhere(ctx, func(b models.Booking) bool {
		return b.CustomerID == customerID
	})
}

// FindUpcoming returns active bookings whose check-in is on or after asOf.
func (r *bookingRepository) FindUpcoming(ctx context.Context, asOf models.Date) ([]models.Booking, error) {
	return r.findWhere(ctx, func(b models.Booking) bool {
		return b.Active() && !b.CheckInDate.Before(asOf)
	})
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut models.Date) ([]models.Booking, error) {
	bookings, err := r.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return availability.FilterOverlapping(bookings, checkIn, checkOut), nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, storage.BookingsTable, id)
}

func (r *bookingRepository) findWhere(ctx context.Context, keep func(models.Booking) bool) ([]models.Booking, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if keep(b) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}
