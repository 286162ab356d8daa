package models

type Customer struct {
	ID               string `dynamodbav:"id" json:"id"`
	FirstName        string `dynamodbav:"firstName" json:"firstName"`
	LastName         string `dynamodbav:"lastName" json:"lastName"`
	Email            string `dynamodbav:"email" json:"email"`
	Phone            string `dynamodbav:"phone" json:"phone"`
	Address          string `dynamodbav:"address" json:"address"`
	CreditCardNumber string `dynamodbav:"creditCardNumber,omitempty" json:"-"`
	CreditCardExpiry string `dynamodbav:"creditCardExpiry,omitempty" json:"-"`
	CreditCardCvv    string `dynamodbav:"creditCardCvv,omitempty" json:"-"`
}
