package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/storage"
)

type CustomerRepository interface {
	Save(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

type customerRepository struct {
	store storage.Store
}

func NewCustomerRepository(store storage.Store) CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) Save(ctx context.Context, customer *models.Customer) error {
	item, err := attributevalue.MarshalMap(customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	return r.store.Put(ctx, storage.CustomersTable, item)
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	item, err := r.store.Get(ctx, storage.CustomersTable, id)
	if err != nil {
		return nil, err
	}
	var customer models.Customer
	if err := attributevalue.UnmarshalMap(item, &customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer %s: %w", id, err)
	}
	return &customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	items, err := r.store.Scan(ctx, storage.CustomersTable)
	if err != nil {
		return nil, err
	}
	customers := make([]models.Customer, 0, len(items))
	for _, item := range items {
		var customer models.Customer
		if err := attributevalue.UnmarshalMap(item, &customer); err != nil {
			return nil, fmt.Errorf("unmarshal customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// FindByEmail returns storage.ErrItemNotFound when no customer has the
// given email.
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Email == email {
			return &all[i], nil
		}
	}
	return nil, storage.ErrItemNotFound
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, storage.CustomersTable, id)
}
