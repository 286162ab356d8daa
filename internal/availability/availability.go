// Package availability decides whether a room can be booked for a date
// range. Date intervals are half-open [checkIn, checkOut): the check-in day
// is occupied, the check-out day is free, so one guest's check-out date may
// be another's check-in date.
package availability

import "github.com/johnboyce/otel-motel/internal/models"

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) share at least one
// day. Touching intervals do not overlap.
func Overlaps(aIn, aOut, bIn, bOut models.Date) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// Conflicts reports whether an existing booking blocks the candidate
// interval. CANCELLED bookings never conflict.
func Conflicts(b models.Booking, checkIn, checkOut models.Date) bool {
	if !b.Active() {
		return false
	}
	return Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut)
}

// IsAvailable reports whether the candidate interval conflicts with none of
// the existing bookings. Callers must guarantee checkIn < checkOut; the
// bookings slice is the room's full booking list, any status.
func IsAvailable(bookings []models.Booking, checkIn, checkOut models.Date) bool {
	for _, b := range bookings {
		if Conflicts(b, checkIn, checkOut) {
			return false
		}
	}
	return true
}

// FilterOverlapping returns the active bookings that conflict with the
// candidate interval.
func FilterOverlapping(bookings []models.Booking, checkIn, checkOut models.Date) []models.Booking {
	overlapping := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if Conflicts(b, checkIn, checkOut) {
			overlapping = append(overlapping, b)
		}
	}
	return overlapping
}
