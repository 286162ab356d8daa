package models

type Hotel struct {
	ID          string `dynamodbav:"id" json:"id"`
	Name        string `dynamodbav:"name" json:"name"`
	Address     string `dynamodbav:"address" json:"address"`
	City        string `dynamodbav:"city" json:"city"`
	State       string `dynamodbav:"state" json:"state"`
	ZipCode     string `dynamodbav:"zipCode" json:"zipCode"`
	Country     string `dynamodbav:"country" json:"country"`
	Phone       string `dynamodbav:"phone" json:"phone"`
	Description string `dynamodbav:"description,omitempty" json:"description,omitempty"`
	StarRating  int    `dynamodbav:"starRating" json:"starRating"`
}
