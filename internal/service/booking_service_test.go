package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/repository"
	"github.com/johnboyce/otel-motel/internal/storage"
)

// --- Mock repositories ---

type mockRoomRepo struct {
	findByIDFn func(ctx context.Context, id string) (*models.Room, error)
}

func (m *mockRoomRepo) Save(ctx context.Context, room *models.Room) error { return nil }
func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*models.Room, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRoomRepo) FindAll(ctx context.Context) ([]models.Room, error) { return nil, nil }
func (m *mockRoomRepo) FindByHotelID(ctx context.Context, hotelID string) ([]models.Room, error) {
	return nil, nil
}
func (m *mockRoomRepo) Delete(ctx context.Context, id string) error { return nil }

type mockCustomerRepo struct {
	findByIDFn func(ctx context.Context, id string) (*models.Customer, error)
}

func (m *mockCustomerRepo) Save(ctx context.Context, customer *models.Customer) error { return nil }
func (m *mockCustomerRepo) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCustomerRepo) FindAll(ctx context.Context) ([]models.Customer, error) { return nil, nil }
func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return nil, storage.ErrItemNotFound
}
func (m *mockCustomerRepo) Delete(ctx context.Context, id string) error { return nil }

type mockBookingRepo struct {
	saveFn         func(ctx context.Context, booking *models.Booking) error
	findByIDFn     func(ctx context.Context, id string) (*models.Booking, error)
	findByRoomIDFn func(ctx context.Context, roomID string) ([]models.Booking, error)
}

func (m *mockBookingRepo) Save(ctx context.Context, booking *models.Booking) error {
	return m.saveFn(ctx, booking)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) { return nil, nil }
func (m *mockBookingRepo) FindByRoomID(ctx context.Context, roomID string) ([]models.Booking, error) {
	return m.findByRoomIDFn(ctx, roomID)
}
func (m *mockBookingRepo) FindByCustomerID(ctx context.Context, customerID string) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) FindUpcoming(ctx context.Context, asOf models.Date) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut models.Date) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) Delete(ctx context.Context, id string) error { return nil }

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

// --- Fixtures ---

func sampleRoom() *models.Room {
	price, _ := models.MoneyFromString("120.00")
	return &models.Room{
		ID:            "room-1",
		HotelID:       "hotel-1",
		RoomNumber:    "101",
		RoomType:      "DOUBLE",
		PricePerNight: price,
		Capacity:      2,
	}
}

func sampleCustomer() *models.Customer {
	return &models.Customer{ID: "cust-1", FirstName: "John", LastName: "Doe", Email: "john.doe@example.com"}
}

func newTestService(existing []models.Booking, saved *[]models.Booking) BookingService {
	roomRepo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Room, error) {
			return sampleRoom(), nil
		},
	}
	customerRepo := &mockCustomerRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Customer, error) {
			return sampleCustomer(), nil
		},
	}
	bookingRepo := &mockBookingRepo{
		saveFn: func(ctx context.Context, booking *models.Booking) error {
			*saved = append(*saved, *booking)
			return nil
		},
		findByRoomIDFn: func(ctx context.Context, roomID string) ([]models.Booking, error) {
			return existing, nil
		},
	}
	return NewBookingService(bookingRepo, roomRepo, customerRepo, nil) // nil publisher = skip RabbitMQ
}

func createInput() CreateBookingInput {
	return CreateBookingInput{
		RoomID:         "room-1",
		CustomerID:     "cust-1",
		CheckInDate:    models.NewDate(2024, time.March, 1),
		CheckOutDate:   models.NewDate(2024, time.March, 4),
		NumberOfGuests: 2,
	}
}

// --- CreateBooking ---

func TestCreateBooking_Success(t *testing.T) {
	var saved []models.Booking
	svc := newTestService(nil, &saved)

	booking, err := svc.CreateBooking(context.Background(), createInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Len(t, saved, 1)
}

func TestCreateBooking_PriceIsNightsTimesRate(t *testing.T) {
	var saved []models.Booking
	svc := newTestService(nil, &saved)

	// 120.00/night, 3 nights
	booking, err := svc.CreateBooking(context.Background(), createInput())

	assert.NoError(t, err)
	want, _ := models.MoneyFromString("360.00")
	assert.True(t, booking.TotalPrice.Equal(want), "want 360.00, got %s", booking.TotalPrice)
}

func TestCreateBooking_RoomNotFound(t *testing.T) {
	roomRepo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Room, error) {
			return nil, storage.ErrItemNotFound
		},
	}
	svc := NewBookingService(&mockBookingRepo{}, roomRepo, &mockCustomerRepo{}, nil)

	_, err := svc.CreateBooking(context.Background(), createInput())

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateBooking_CustomerNotFound(t *testing.T) {
	roomRepo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Room, error) {
			return sampleRoom(), nil
		},
	}
	customerRepo := &mockCustomerRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Customer, error) {
			return nil, storage.ErrItemNotFound
		},
	}
	svc := NewBookingService(&mockBookingRepo{}, roomRepo, customerRepo, nil)

	_, err := svc.CreateBooking(context.Background(), createInput())

	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	var saved []models.Booking
	svc := newTestService(nil, &saved)

	in := createInput()
	in.CheckInDate = models.NewDate(2024, time.March, 4)
	in.CheckOutDate = models.NewDate(2024, time.March, 1)

	_, err := svc.CreateBooking(context.Background(), in)

	assert.ErrorIs(t, err, ErrInvalidDateRange)
	assert.Empty(t, saved)
}

func TestCreateBooking_ZeroLengthStayRejected(t *testing.T) {
	var saved []models.Booking
	svc := newTestService(nil, &saved)

	in := createInput()
	in.CheckOutDate = in.CheckInDate

	_, err := svc.CreateBooking(context.Background(), in)

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateBooking_GuestBoundRejectedBeforeWrite(t *testing.T) {
	var saved []models.Booking
	svc := newTestService(nil, &saved)

	in := createInput()
	in.NumberOfGuests = 3 // room capacity is 2

	_, err := svc.CreateBooking(context.Background(), in)

	assert.ErrorIs(t, err, ErrTooManyGuests)
	assert.Empty(t, saved, "no storage write may happen on a rejected request")
}

func TestCreateBooking_OverlapConflict(t *testing.T) {
	existing := []models.Booking{{
		ID:           "existing",
		RoomID:       "room-1",
		CheckInDate:  models.NewDate(2024, time.March, 2),
		CheckOutDate: models.NewDate(2024, time.March, 6),
		Status:       models.StatusConfirmed,
	}}
	var saved []models.Booking
	svc := newTestService(existing, &saved)

	_, err := svc.CreateBooking(context.Background(), createInput())

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Empty(t, saved)
}

func TestCreateBooking_TouchingIntervalAccepted(t *testing.T) {
	existing := []models.Booking{{
		ID:           "existing",
		RoomID:       "room-1",
		CheckInDate:  models.NewDate(2024, time.February, 26),
		CheckOutDate: models.NewDate(2024, time.March, 1), // checkout on candidate check-in
		Status:       models.StatusConfirmed,
	}}
	var saved []models.Booking
	svc := newTestService(existing, &saved)

	booking, err := svc.CreateBooking(context.Background(), createInput())

	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
}

func TestCreateBooking_CancelledBookingDoesNotBlock(t *testing.T) {
	existing := []models.Booking{{
		ID:           "cancelled",
		RoomID:       "room-1",
		CheckInDate:  models.NewDate(2024, time.March, 1),
		CheckOutDate: models.NewDate(2024, time.March, 4),
		Status:       models.StatusCancelled,
	}}
	var saved []models.Booking
	svc := newTestService(existing, &saved)

	// Identical date range as the cancelled booking.
	booking, err := svc.CreateBooking(context.Background(), createInput())

	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
}

func TestCreateBooking_PublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	roomRepo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Room, error) { return sampleRoom(), nil },
	}
	customerRepo := &mockCustomerRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Customer, error) { return sampleCustomer(), nil },
	}
	bookingRepo := &mockBookingRepo{
		saveFn:         func(ctx context.Context, booking *models.Booking) error { return nil },
		findByRoomIDFn: func(ctx context.Context, roomID string) ([]models.Booking, error) { return nil, nil },
	}
	svc := NewBookingService(bookingRepo, roomRepo, customerRepo, pub)

	_, err := svc.CreateBooking(context.Background(), createInput())

	assert.NoError(t, err)
	assert.Equal(t, []string{"booking.created"}, pub.keys)
}

// Concurrent creates for the same room and overlapping dates must not
// double-book: the per-room lock serializes the check-then-act sequence.
func TestCreateBooking_ConcurrentCreatesDoNotDoubleBook(t *testing.T) {
	store := storage.NewMemoryStore()
	bookingRepo := repository.NewBookingRepository(store)
	roomRepo := repository.NewRoomRepository(store)
	customerRepo := repository.NewCustomerRepository(store)

	ctx := context.Background()
	assert.NoError(t, roomRepo.Save(ctx, sampleRoom()))
	assert.NoError(t, customerRepo.Save(ctx, sampleCustomer()))

	svc := NewBookingService(bookingRepo, roomRepo, customerRepo, nil)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(ctx, createInput())
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrRoomUnavailable)
		}
	}
	assert.Equal(t, 1, created, "exactly one of the racing creates may win")

	persisted, err := bookingRepo.FindByRoomID(ctx, "room-1")
	assert.NoError(t, err)
	assert.Len(t, persisted, 1)
}

// --- CancelBooking ---

func TestCancelBooking_Success(t *testing.T) {
	var saved []models.Booking
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return &models.Booking{ID: id, RoomID: "room-1", Status: models.StatusConfirmed}, nil
		},
		saveFn: func(ctx context.Context, booking *models.Booking) error {
			saved = append(saved, *booking)
			return nil
		},
	}
	pub := &recordingPublisher{}
	svc := NewBookingService(bookingRepo, &mockRoomRepo{}, &mockCustomerRepo{}, pub)

	booking, err := svc.CancelBooking(context.Background(), "b1")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, booking.Status)
	assert.Len(t, saved, 1)
	assert.Equal(t, []string{"booking.cancelled"}, pub.keys)
}

func TestCancelBooking_NotFound(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return nil, storage.ErrItemNotFound
		},
	}
	svc := NewBookingService(bookingRepo, &mockRoomRepo{}, &mockCustomerRepo{}, nil)

	_, err := svc.CancelBooking(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBooking_AlreadyCancelledIsIdempotent(t *testing.T) {
	var saved []models.Booking
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return &models.Booking{ID: id, Status: models.StatusCancelled}, nil
		},
		saveFn: func(ctx context.Context, booking *models.Booking) error {
			saved = append(saved, *booking)
			return nil
		},
	}
	svc := NewBookingService(bookingRepo, &mockRoomRepo{}, &mockCustomerRepo{}, nil)

	booking, err := svc.CancelBooking(context.Background(), "b1")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, booking.Status)
	assert.Empty(t, saved, "cancelling a cancelled booking must not rewrite it")
}
