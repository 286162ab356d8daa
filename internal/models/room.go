package models

type Room struct {
	ID            string `dynamodbav:"id" json:"id"`
	HotelID       string `dynamodbav:"hotelId" json:"hotelId"`
	RoomNumber    string `dynamodbav:"roomNumber" json:"roomNumber"`
	RoomType      string `dynamodbav:"roomType" json:"roomType"`
	PricePerNight Money  `dynamodbav:"pricePerNight" json:"pricePerNight"`
	Capacity      int    `dynamodbav:"capacity" json:"capacity"`
	Description   string `dynamodbav:"description,omitempty" json:"description,omitempty"`
}
