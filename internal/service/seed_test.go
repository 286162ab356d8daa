package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/johnboyce/otel-motel/internal/availability"
	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/repository"
	"github.com/johnboyce/otel-motel/internal/storage"
)

func newSeedFixture() (*Seeder, repository.HotelRepository, repository.RoomRepository, repository.BookingRepository) {
	store := storage.NewMemoryStore()
	hotelRepo := repository.NewHotelRepository(store)
	roomRepo := repository.NewRoomRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	bookingRepo := repository.NewBookingRepository(store)
	seeder := NewSeeder(hotelRepo, roomRepo, customerRepo, bookingRepo, rand.New(rand.NewSource(42)))
	return seeder, hotelRepo, roomRepo, bookingRepo
}

func TestSeeder_PopulatesStore(t *testing.T) {
	seeder, hotelRepo, roomRepo, bookingRepo := newSeedFixture()
	ctx := context.Background()

	err := seeder.Run(ctx, models.NewDate(2024, time.June, 1))
	assert.NoError(t, err)

	hotels, err := hotelRepo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, hotels, 3)

	rooms, err := roomRepo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, rooms, 24)

	bookings, err := bookingRepo.FindAll(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, bookings)
}

func TestSeeder_NeverCreatesOverlappingBookings(t *testing.T) {
	seeder, _, _, bookingRepo := newSeedFixture()
	ctx := context.Background()

	assert.NoError(t, seeder.Run(ctx, models.NewDate(2024, time.June, 1)))

	bookings, err := bookingRepo.FindAll(ctx)
	assert.NoError(t, err)

	byRoom := make(map[string][]models.Booking)
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}
	for roomID, roomBookings := range byRoom {
		for i := range roomBookings {
			for j := i + 1; j < len(roomBookings); j++ {
				a, b := roomBookings[i], roomBookings[j]
				assert.False(t,
					availability.Overlaps(a.CheckInDate, a.CheckOutDate, b.CheckInDate, b.CheckOutDate),
					"room %s has overlapping seeded bookings %s and %s", roomID, a.ID, b.ID)
			}
		}
	}
}

func TestSeeder_SecondRunIsNoOp(t *testing.T) {
	seeder, hotelRepo, _, _ := newSeedFixture()
	ctx := context.Background()

	assert.NoError(t, seeder.Run(ctx, models.NewDate(2024, time.June, 1)))
	first, err := hotelRepo.FindAll(ctx)
	assert.NoError(t, err)

	assert.NoError(t, seeder.Run(ctx, models.NewDate(2024, time.June, 1)))
	second, err := hotelRepo.FindAll(ctx)
	assert.NoError(t, err)

	assert.Equal(t, len(first), len(second))
}
