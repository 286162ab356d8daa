package models

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// Booking reserves a room for a half-open date interval
// [CheckInDate, CheckOutDate). Every status except CANCELLED occupies the
// room for that interval.
type Booking struct {
	ID              string        `dynamodbav:"id" json:"id"`
	RoomID          string        `dynamodbav:"roomId" json:"roomId"`
	CustomerID      string        `dynamodbav:"customerId" json:"customerId"`
	CheckInDate     Date          `dynamodbav:"checkInDate" json:"checkInDate"`
	CheckOutDate    Date          `dynamodbav:"checkOutDate" json:"checkOutDate"`
	NumberOfGuests  int           `dynamodbav:"numberOfGuests" json:"numberOfGuests"`
	TotalPrice      Money         `dynamodbav:"totalPrice" json:"totalPrice"`
	Status          BookingStatus `dynamodbav:"status" json:"status"`
	SpecialRequests string        `dynamodbav:"specialRequests,omitempty" json:"specialRequests,omitempty"`
}

// Active reports whether the booking occupies its room, i.e. it has any
// status other than CANCELLED.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}

// Nights is the length of the stay in whole days.
func (b Booking) Nights() int {
	return DaysBetween(b.CheckInDate, b.CheckOutDate)
}
