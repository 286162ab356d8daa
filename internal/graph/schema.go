// Package graph builds the GraphQL schema fronting the booking service.
// The query and mutation surface mirrors the service interfaces one to one;
// nothing in here contains domain logic.
package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/service"
)

// dateScalar carries models.Date through the schema as an ISO-8601 string.
var dateScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "Calendar date in ISO-8601 format (YYYY-MM-DD)",
	Serialize: func(value any) any {
		switch d := value.(type) {
		case models.Date:
			return d.String()
		case *models.Date:
			return d.String()
		}
		return nil
	},
	ParseValue: func(value any) any {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		d, err := models.ParseDate(s)
		if err != nil {
			return nil
		}
		return d
	},
	ParseLiteral: func(valueAST ast.Value) any {
		lit, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		d, err := models.ParseDate(lit.Value)
		if err != nil {
			return nil
		}
		return d
	},
})

// decimalScalar serializes Money exactly, as its decimal string.
var decimalScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "Exact decimal number serialized as a string",
	Serialize: func(value any) any {
		switch m := value.(type) {
		case models.Money:
			return m.String()
		case *models.Money:
			return m.String()
		}
		return nil
	},
	ParseValue: func(value any) any {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		m, err := models.MoneyFromString(s)
		if err != nil {
			return nil
		}
		return m
	},
	ParseLiteral: func(valueAST ast.Value) any {
		lit, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		m, err := models.MoneyFromString(lit.Value)
		if err != nil {
			return nil
		}
		return m
	},
})

var bookingStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "BookingStatus",
	Values: graphql.EnumValueConfigMap{
		"PENDING":   &graphql.EnumValueConfig{Value: models.StatusPending},
		"CONFIRMED": &graphql.EnumValueConfig{Value: models.StatusConfirmed},
		"CANCELLED": &graphql.EnumValueConfig{Value: models.StatusCancelled},
		"COMPLETED": &graphql.EnumValueConfig{Value: models.StatusCompleted},
	},
})

// NewSchema wires the service layer into an executable schema.
func NewSchema(bookings service.BookingService, hotels service.HotelService) (graphql.Schema, error) {
	hotelType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Hotel",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.String},
			"address":     &graphql.Field{Type: graphql.String},
			"city":        &graphql.Field{Type: graphql.String},
			"state":       &graphql.Field{Type: graphql.String},
			"zipCode":     &graphql.Field{Type: graphql.String},
			"country":     &graphql.Field{Type: graphql.String},
			"phone":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"starRating":  &graphql.Field{Type: graphql.Int},
		},
	})

	roomType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Room",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"hotelId":       &graphql.Field{Type: graphql.String},
			"roomNumber":    &graphql.Field{Type: graphql.String},
			"roomType":      &graphql.Field{Type: graphql.String},
			"pricePerNight": &graphql.Field{Type: decimalScalar},
			"capacity":      &graphql.Field{Type: graphql.Int},
			"description":   &graphql.Field{Type: graphql.String},
			"hotel": &graphql.Field{
				Type: hotelType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					room, ok := roomFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return hotels.Hotel(p.Context, room.HotelID)
				},
			},
		},
	})

	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"firstName": &graphql.Field{Type: graphql.String},
			"lastName":  &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"phone":     &graphql.Field{Type: graphql.String},
			"address":   &graphql.Field{Type: graphql.String},
		},
	})

	bookingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Booking",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"roomId":          &graphql.Field{Type: graphql.String},
			"customerId":      &graphql.Field{Type: graphql.String},
			"checkInDate":     &graphql.Field{Type: dateScalar},
			"checkOutDate":    &graphql.Field{Type: dateScalar},
			"numberOfGuests":  &graphql.Field{Type: graphql.Int},
			"totalPrice":      &graphql.Field{Type: decimalScalar},
			"status":          &graphql.Field{Type: bookingStatusEnum},
			"specialRequests": &graphql.Field{Type: graphql.String},
			"room": &graphql.Field{
				Type: roomType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					booking, ok := bookingFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return hotels.Room(p.Context, booking.RoomID)
				},
			},
			"customer": &graphql.Field{
				Type: customerType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					booking, ok := bookingFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return hotels.Customer(p.Context, booking.CustomerID)
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hotels": &graphql.Field{
				Type:        graphql.NewList(hotelType),
				Description: "All hotels",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return hotels.Hotels(p.Context)
				},
			},
			"hotel": &graphql.Field{
				Type: hotelType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return hotels.Hotel(p.Context, p.Args["id"].(string))
				},
			},
			"hotelsByCity": &graphql.Field{
				Type: graphql.NewList(hotelType),
				Args: graphql.FieldConfigArgument{
					"city": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return hotels.HotelsByCity(p.Context, p.Args["city"].(string))
				},
			},
			"hotelsByCountry": &graphql.Field{
				Type: graphql.NewList(hotelType),
				Args: graphql.FieldConfigArgument{
					"country": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return hotels.HotelsByCountry(p.Context, p.Args["country"].(string))
				},
			},
			"room": &graphql.Field{
				Type: roomType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return hotels.Room(p.Context, p.Args["id"].(string))
				},
			},
			"roomsByHotel": &graphql.Field{
				Type: graphql.NewList(roomType),
				Args: graphql.FieldConfigArgument{
					"hotelId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return hotels.RoomsByHotel(p.Context, p.Args["hotelId"].(string))
				},
			},
			"availableRooms": &graphql.Field{
				Type:        graphql.NewList(roomType),
				Description: "Rooms of a hotel free for the whole date range",
				Args: graphql.FieldConfigArgument{
					"hotelId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"checkIn":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateScalar)},
					"checkOut": &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateScalar)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					checkIn, checkOut, err := dateArgs(p)
					if err != nil {
						return nil, err
					}
					return hotels.AvailableRooms(p.Context, p.Args["hotelId"].(string), checkIn, checkOut)
				},
			},
			"booking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return bookings.GetBooking(p.Context, p.Args["id"].(string))
				},
			},
			"bookingsByRoom": &graphql.Field{
				Type: graphql.NewList(bookingType),
				Args: graphql.FieldConfigArgument{
					"roomId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return bookings.BookingsByRoom(p.Context, p.Args["roomId"].(string))
				},
			},
			"bookingsByCustomer": &graphql.Field{
				Type: graphql.NewList(bookingType),
				Args: graphql.FieldConfigArgument{
					"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return bookings.BookingsByCustomer(p.Context, p.Args["customerId"].(string))
				},
			},
			"upcomingBookings": &graphql.Field{
				Type:        graphql.NewList(bookingType),
				Description: "Active bookings checking in today or later",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return bookings.UpcomingBookings(p.Context, models.Today())
				},
			},
			"overlappingBookings": &graphql.Field{
				Type:        graphql.NewList(bookingType),
				Description: "Active bookings of a room that overlap the date range",
				Args: graphql.FieldConfigArgument{
					"roomId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"checkIn":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateScalar)},
					"checkOut": &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateScalar)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					checkIn, checkOut, err := dateArgs(p)
					if err != nil {
						return nil, err
					}
					return bookings.OverlappingBookings(p.Context, p.Args["roomId"].(string), checkIn, checkOut)
				},
			},
			"customer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return hotels.Customer(p.Context, p.Args["id"].(string))
				},
			},
			"customerByEmail": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return hotels.CustomerByEmail(p.Context, p.Args["email"].(string))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createBooking": &graphql.Field{
				Type:        bookingType,
				Description: "Create a booking if the room is free for the date range",
				Args: graphql.FieldConfigArgument{
					"roomId":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"customerId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"checkInDate":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateScalar)},
					"checkOutDate":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateScalar)},
					"numberOfGuests":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"specialRequests": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					checkIn, ok := p.Args["checkInDate"].(models.Date)
					if !ok {
						return nil, fmt.Errorf("invalid checkInDate")
					}
					checkOut, ok := p.Args["checkOutDate"].(models.Date)
					if !ok {
						return nil, fmt.Errorf("invalid checkOutDate")
					}
					specialRequests, _ := p.Args["specialRequests"].(string)

					return bookings.CreateBooking(p.Context, service.CreateBookingInput{
						RoomID:          p.Args["roomId"].(string),
						CustomerID:      p.Args["customerId"].(string),
						CheckInDate:     checkIn,
						CheckOutDate:    checkOut,
						NumberOfGuests:  p.Args["numberOfGuests"].(int),
						SpecialRequests: specialRequests,
					})
				},
			},
			"cancelBooking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"bookingId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return bookings.CancelBooking(p.Context, p.Args["bookingId"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func dateArgs(p graphql.ResolveParams) (models.Date, models.Date, error) {
	checkIn, ok := p.Args["checkIn"].(models.Date)
	if !ok {
		return models.Date{}, models.Date{}, fmt.Errorf("invalid checkIn")
	}
	checkOut, ok := p.Args["checkOut"].(models.Date)
	if !ok {
		return models.Date{}, models.Date{}, fmt.Errorf("invalid checkOut")
	}
	return checkIn, checkOut, nil
}

func roomFromSource(src any) (models.Room, bool) {
	switch r := src.(type) {
	case models.Room:
		return r, true
	case *models.Room:
		return *r, true
	}
	return models.Room{}, false
}

func bookingFromSource(src any) (models.Booking, bool) {
	switch b := src.(type) {
	case models.Booking:
		return b, true
	case *models.Booking:
		return *b, true
	}
	return models.Booking{}, false
}
