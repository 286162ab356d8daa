package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/johnboyce/otel-motel/internal/availability"
	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/repository"
	"github.com/johnboyce/otel-motel/internal/storage"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidDateRange = errors.New("check-in date must be before check-out date")
	ErrTooManyGuests    = errors.New("number of guests exceeds room capacity")
	ErrRoomUnavailable  = errors.New("room is not available for the selected dates")
)

// EventPublisher emits booking lifecycle events. A nil publisher disables
// publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type CreateBookingInput struct {
	RoomID          string
	CustomerID      string
	CheckInDate     models.Date
	CheckOutDate    models.Date
	NumberOfGuests  int
	SpecialRequests string
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	BookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error)
	BookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	UpcomingBookings(ctx context.Context, asOf models.Date) ([]models.Booking, error)
	OverlappingBookings(ctx context.Context, roomID string, checkIn, checkOut models.Date) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	roomRepo     repository.RoomRepository
	customerRepo repository.CustomerRepository
	publisher    EventPublisher

	// roomLocks serializes create per room id: the store has no
	// transactions, so the read-check-write below must not interleave for
	// the same room. In-process only; a multi-instance deployment needs a
	// shared lock or a conditional write instead.
	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	customerRepo repository.CustomerRepository,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
		roomLocks:    make(map[string]*sync.Mutex),
	}
}

func (s *bookingService) roomLock(roomID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomID] = lock
	}
	return lock
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	// 1. Resolve referenced entities.
	room, err := s.roomRepo.FindByID(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if _, err := s.customerRepo.FindByID(ctx, in.CustomerID); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	// 2. Validate before touching the booking table.
	if in.CheckInDate.IsZero() || in.CheckOutDate.IsZero() || !in.CheckInDate.Before(in.CheckOutDate) {
		return nil, ErrInvalidDateRange
	}
	if in.NumberOfGuests < 1 || in.NumberOfGuests > room.Capacity {
		return nil, ErrTooManyGuests
	}

	lock := s.roomLock(in.RoomID)
	lock.Lock()
	defer lock.Unlock()

	// 3-4. Availability check against the room's current bookings.
	existing, err := s.bookingRepo.FindByRoomID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if !availability.IsAvailable(existing, in.CheckInDate, in.CheckOutDate) {
		return nil, ErrRoomUnavailable
	}

	// 5-6. Price and persist.
	nights := models.DaysBetween(in.CheckInDate, in.CheckOutDate)
	booking := &models.Booking{
		ID:              uuid.NewString(),
		RoomID:          in.RoomID,
		CustomerID:      in.CustomerID,
		CheckInDate:     in.CheckInDate,
		CheckOutDate:    in.CheckOutDate,
		NumberOfGuests:  in.NumberOfGuests,
		TotalPrice:      room.PricePerNight.MulInt(nights),
		Status:          models.StatusConfirmed,
		SpecialRequests: in.SpecialRequests,
	}
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}

	s.publish("booking.created", booking)
	log.Printf("booking %s created: room %s, %s to %s", booking.ID, booking.RoomID, booking.CheckInDate, booking.CheckOutDate)
	return booking, nil
}

// CancelBooking sets the booking to CANCELLED. Cancelling an already
// cancelled booking is a no-op that returns the booking unchanged.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.Status == models.StatusCancelled {
		return booking, nil
	}

	booking.Status = models.StatusCancelled
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("save cancelled booking: %w", err)
	}

	s.publish("booking.cancelled", booking)
	log.Printf("booking %s cancelled", booking.ID)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) BookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByRoomID(ctx, roomID)
}

func (s *bookingService) BookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByCustomerID(ctx, customerID)
}

func (s *bookingService) UpcomingBookings(ctx context.Context, asOf models.Date) ([]models.Booking, error) {
	return s.bookingRepo.FindUpcoming(ctx, asOf)
}

func (s *bookingService) OverlappingBookings(ctx context.Context, roomID string, checkIn, checkOut models.Date) ([]models.Booking, error) {
	return s.bookingRepo.FindOverlapping(ctx, roomID, checkIn, checkOut)
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, booking); err != nil {
		// Events are best-effort; the booking is already persisted.
		log.Printf("publish %s for booking %s: %v", routingKey, booking.ID, err)
	}
}
