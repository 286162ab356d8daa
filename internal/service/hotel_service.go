package service

import (
	"context"
	"errors"

	"github.com/johnboyce/otel-motel/internal/availability"
	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/repository"
	"github.com/johnboyce/otel-motel/internal/storage"
)

var ErrHotelNotFound = errors.New("hotel not found")

// HotelService answers the read-only hotel/room/customer queries exposed
// over GraphQL.
type HotelService interface {
	Hotels(ctx context.Context) ([]models.Hotel, error)
	Hotel(ctx context.Context, id string) (*models.Hotel, error)
	HotelsByCity(ctx context.Context, city string) ([]models.Hotel, error)
	HotelsByCountry(ctx context.Context, country string) ([]models.Hotel, error)
	Room(ctx context.Context, id string) (*models.Room, error)
	RoomsByHotel(ctx context.Context, hotelID string) ([]models.Room, error)
	AvailableRooms(ctx context.Context, hotelID string, checkIn, checkOut models.Date) ([]models.Room, error)
	Customer(ctx context.Context, id string) (*models.Customer, error)
	CustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
}

type hotelService struct {
	hotelRepo    repository.HotelRepository
	roomRepo     repository.RoomRepository
	customerRepo repository.CustomerRepository
	bookingRepo  repository.BookingRepository
}

func NewHotelService(
	hotelRepo repository.HotelRepository,
	roomRepo repository.RoomRepository,
	customerRepo repository.CustomerRepository,
	bookingRepo repository.BookingRepository,
) HotelService {
	return &hotelService{
		hotelRepo:    hotelRepo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
	}
}

func (s *hotelService) Hotels(ctx context.Context) ([]models.Hotel, error) {
	return s.hotelRepo.FindAll(ctx)
}

func (s *hotelService) Hotel(ctx context.Context, id string) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

func (s *hotelService) HotelsByCity(ctx context.Context, city string) ([]models.Hotel, error) {
	return s.hotelRepo.FindByCity(ctx, city)
}

func (s *hotelService) HotelsByCountry(ctx context.Context, country string) ([]models.Hotel, error) {
	return s.hotelRepo.FindByCountry(ctx, country)
}

func (s *hotelService) Room(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *hotelService) RoomsByHotel(ctx context.Context, hotelID string) ([]models.Room, error) {
	return s.roomRepo.FindByHotelID(ctx, hotelID)
}

// AvailableRooms returns the hotel's rooms with no active booking
// overlapping [checkIn, checkOut).
func (s *hotelService) AvailableRooms(ctx context.Context, hotelID string, checkIn, checkOut models.Date) ([]models.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}

	rooms, err := s.roomRepo.FindByHotelID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		bookings, err := s.bookingRepo.FindByRoomID(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		if availability.IsAvailable(bookings, checkIn, checkOut) {
			available = append(available, room)
		}
	}
	return available, nil
}

func (s *hotelService) Customer(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *hotelService) CustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}
