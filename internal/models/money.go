package models

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. It is stored as a DynamoDB number
// attribute backed by its string representation, so price arithmetic never
// goes through floating point.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

// MulInt returns the amount multiplied by an integer factor (e.g. nights).
func (m Money) MulInt(n int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

func (m Money) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: m.Decimal.String()}, nil
}

func (m *Money) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return fmt.Errorf("money attribute must be a number, got %T", av)
	}
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("parse money %q: %w", n.Value, err)
	}
	m.Decimal = d
	return nil
}
