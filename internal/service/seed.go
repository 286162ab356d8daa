package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"github.com/johnboyce/otel-motel/internal/availability"
	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/repository"
)

// Seeder fills an empty store with sample hotels, rooms, customers and
// bookings. Randomness comes from the injected source, so a fixed seed
// produces a fixed data set; nothing here touches process-global state.
type Seeder struct {
	hotelRepo    repository.HotelRepository
	roomRepo     repository.RoomRepository
	customerRepo repository.CustomerRepository
	bookingRepo  repository.BookingRepository
	rng          *rand.Rand
}

func NewSeeder(
	hotelRepo repository.HotelRepository,
	roomRepo repository.RoomRepository,
	customerRepo repository.CustomerRepository,
	bookingRepo repository.BookingRepository,
	rng *rand.Rand,
) *Seeder {
	return &Seeder{
		hotelRepo:    hotelRepo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		rng:          rng,
	}
}

// Run seeds the store unless hotels already exist.
func (s *Seeder) Run(ctx context.Context, from models.Date) error {
	existing, err := s.hotelRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("store already seeded, skipping")
		return nil
	}

	customers, err := s.seedCustomers(ctx)
	if err != nil {
		return err
	}
	rooms, err := s.seedHotels(ctx)
	if err != nil {
		return err
	}
	created, err := s.seedBookings(ctx, rooms, customers, from)
	if err != nil {
		return err
	}

	log.Printf("seeded %d customers, %d rooms, %d bookings", len(customers), len(rooms), created)
	return nil
}

func (s *Seeder) seedCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{
		{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Phone: "+1-555-0101", Address: "123 Main St, New York, NY 10001", CreditCardNumber: "4532015112830366", CreditCardExpiry: "12/25", CreditCardCvv: "123"},
		{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Phone: "+1-555-0102", Address: "456 Oak Ave, Los Angeles, CA 90001", CreditCardNumber: "5425233430109903", CreditCardExpiry: "11/26", CreditCardCvv: "456"},
		{FirstName: "Michael", LastName: "Johnson", Email: "michael.johnson@example.com", Phone: "+1-555-0103", Address: "789 Pine Rd, Chicago, IL 60601", CreditCardNumber: "2221000010003695", CreditCardExpiry: "10/24", CreditCardCvv: "789"},
		{FirstName: "Emily", LastName: "Williams", Email: "emily.williams@example.com", Phone: "+1-555-0104", Address: "321 Elm St, Houston, TX 77001", CreditCardNumber: "378282246310005", CreditCardExpiry: "09/25", CreditCardCvv: "321"},
		{FirstName: "David", LastName: "Brown", Email: "david.brown@example.com", Phone: "+1-555-0105", Address: "654 Maple Dr, Phoenix, AZ 85001", CreditCardNumber: "371449635398431", CreditCardExpiry: "08/26", CreditCardCvv: "654"},
		{FirstName: "Sarah", LastName: "Davis", Email: "sarah.davis@example.com", Phone: "+1-555-0106", Address: "987 Cedar Ln, Philadelphia, PA 19101", CreditCardNumber: "6011111111111117", CreditCardExpiry: "07/25", CreditCardCvv: "987"},
	}

	for i := range customers {
		customers[i].ID = uuid.NewString()
		if err := s.customerRepo.Save(ctx, &customers[i]); err != nil {
			return nil, fmt.Errorf("seed customer: %w", err)
		}
	}
	return customers, nil
}

func (s *Seeder) seedHotels(ctx context.Context) ([]models.Room, error) {
	hotels := []models.Hotel{
		{Name: "The Grand Plaza", Address: "768 5th Ave", City: "New York", State: "NY", ZipCode: "10019", Country: "USA", Phone: "+1-212-555-0100", Description: "Landmark hotel overlooking Central Park", StarRating: 5},
		{Name: "Bayside Inn", Address: "401 Harbor Dr", City: "San Diego", State: "CA", ZipCode: "92101", Country: "USA", Phone: "+1-619-555-0150", Description: "Waterfront rooms a short walk from the Gaslamp Quarter", StarRating: 4},
		{Name: "The Lakeshore", Address: "120 E Delaware Pl", City: "Chicago", State: "IL", ZipCode: "60611", Country: "USA", Phone: "+1-312-555-0180", Description: "Boutique stay on the Magnificent Mile", StarRating: 4},
	}

	roomTypes := []struct {
		name     string
		price    string
		capacity int
	}{
		{"SINGLE", "120.00", 1},
		{"DOUBLE", "180.00", 2},
		{"SUITE", "320.00", 4},
	}

	var rooms []models.Room
	for hi := range hotels {
		hotels[hi].ID = uuid.NewString()
		if err := s.hotelRepo.Save(ctx, &hotels[hi]); err != nil {
			return nil, fmt.Errorf("seed hotel: %w", err)
		}

		for floor := 1; floor <= 2; floor++ {
			for n := 1; n <= 4; n++ {
				rt := roomTypes[s.rng.Intn(len(roomTypes))]
				price, err := models.MoneyFromString(rt.price)
				if err != nil {
					return nil, err
				}
				room := models.Room{
					ID:            uuid.NewString(),
					HotelID:       hotels[hi].ID,
					RoomNumber:    fmt.Sprintf("%d0%d", floor, n),
					RoomType:      rt.name,
					PricePerNight: price,
					Capacity:      rt.capacity,
				}
				if err := s.roomRepo.Save(ctx, &room); err != nil {
					return nil, fmt.Errorf("seed room: %w", err)
				}
				rooms = append(rooms, room)
			}
		}
	}
	return rooms, nil
}

// seedBookings books roughly half the rooms over the ninety days after
// from, never creating overlapping stays for a room.
func (s *Seeder) seedBookings(ctx context.Context, rooms []models.Room, customers []models.Customer, from models.Date) (int, error) {
	created := 0
	for _, room := range rooms {
		if s.rng.Intn(2) == 0 {
			continue
		}

		var existing []models.Booking
		for attempts := 0; attempts < 4; attempts++ {
			start := from.AddDays(s.rng.Intn(90))
			nights := 1 + s.rng.Intn(6)
			end := start.AddDays(nights)

			if !availability.IsAvailable(existing, start, end) {
				continue
			}

			customer := customers[s.rng.Intn(len(customers))]
			booking := models.Booking{
				ID:             uuid.NewString(),
				RoomID:         room.ID,
				CustomerID:     customer.ID,
				CheckInDate:    start,
				CheckOutDate:   end,
				NumberOfGuests: 1 + s.rng.Intn(room.Capacity),
				TotalPrice:     room.PricePerNight.MulInt(nights),
				Status:         models.StatusConfirmed,
			}
			if err := s.bookingRepo.Save(ctx, &booking); err != nil {
				return created, fmt.Errorf("seed booking: %w", err)
			}
			existing = append(existing, booking)
			created++
		}
	}
	return created, nil
}
