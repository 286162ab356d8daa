package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/repository"
	"github.com/johnboyce/otel-motel/internal/storage"
)

func newHotelFixture(t *testing.T) (HotelService, repository.BookingRepository) {
	t.Helper()
	store := storage.NewMemoryStore()
	hotelRepo := repository.NewHotelRepository(store)
	roomRepo := repository.NewRoomRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	bookingRepo := repository.NewBookingRepository(store)

	ctx := context.Background()
	assert.NoError(t, hotelRepo.Save(ctx, &models.Hotel{ID: "hotel-1", Name: "The Grand Plaza", City: "New York", Country: "USA"}))
	assert.NoError(t, hotelRepo.Save(ctx, &models.Hotel{ID: "hotel-2", Name: "Bayside Inn", City: "San Diego", Country: "USA"}))

	price, _ := models.MoneyFromString("150.00")
	assert.NoError(t, roomRepo.Save(ctx, &models.Room{ID: "room-1", HotelID: "hotel-1", RoomNumber: "101", PricePerNight: price, Capacity: 2}))
	assert.NoError(t, roomRepo.Save(ctx, &models.Room{ID: "room-2", HotelID: "hotel-1", RoomNumber: "102", PricePerNight: price, Capacity: 2}))

	assert.NoError(t, customerRepo.Save(ctx, &models.Customer{ID: "cust-1", Email: "jane.smith@example.com"}))

	return NewHotelService(hotelRepo, roomRepo, customerRepo, bookingRepo), bookingRepo
}

func TestHotelService_HotelsByCity(t *testing.T) {
	svc, _ := newHotelFixture(t)

	hotels, err := svc.HotelsByCity(context.Background(), "New York")

	assert.NoError(t, err)
	assert.Len(t, hotels, 1)
	assert.Equal(t, "The Grand Plaza", hotels[0].Name)
}

func TestHotelService_HotelNotFound(t *testing.T) {
	svc, _ := newHotelFixture(t)

	_, err := svc.Hotel(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrHotelNotFound)
}

func TestHotelService_AvailableRooms_ExcludesBookedRoom(t *testing.T) {
	svc, bookingRepo := newHotelFixture(t)
	ctx := context.Background()

	assert.NoError(t, bookingRepo.Save(ctx, &models.Booking{
		ID:           "b1",
		RoomID:       "room-1",
		CustomerID:   "cust-1",
		CheckInDate:  models.NewDate(2024, time.April, 10),
		CheckOutDate: models.NewDate(2024, time.April, 14),
		Status:       models.StatusConfirmed,
	}))

	rooms, err := svc.AvailableRooms(ctx, "hotel-1",
		models.NewDate(2024, time.April, 12), models.NewDate(2024, time.April, 16))

	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, "room-2", rooms[0].ID)
}

func TestHotelService_AvailableRooms_CancelledBookingFreesRoom(t *testing.T) {
	svc, bookingRepo := newHotelFixture(t)
	ctx := context.Background()

	assert.NoError(t, bookingRepo.Save(ctx, &models.Booking{
		ID:           "b1",
		RoomID:       "room-1",
		CheckInDate:  models.NewDate(2024, time.April, 10),
		CheckOutDate: models.NewDate(2024, time.April, 14),
		Status:       models.StatusCancelled,
	}))

	rooms, err := svc.AvailableRooms(ctx, "hotel-1",
		models.NewDate(2024, time.April, 10), models.NewDate(2024, time.April, 14))

	assert.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestHotelService_AvailableRooms_InvalidRange(t *testing.T) {
	svc, _ := newHotelFixture(t)

	_, err := svc.AvailableRooms(context.Background(), "hotel-1",
		models.NewDate(2024, time.April, 14), models.NewDate(2024, time.April, 10))

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestHotelService_CustomerByEmail(t *testing.T) {
	svc, _ := newHotelFixture(t)

	customer, err := svc.CustomerByEmail(context.Background(), "jane.smith@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "cust-1", customer.ID)

	_, err = svc.CustomerByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
