package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore implements Store on a DynamoDB table per entity, partition
// key "id".
type DynamoStore struct {
	client *dynamodb.Client
}

func NewDynamoStore(client *dynamodb.Client) *DynamoStore {
	return &DynamoStore{client: client}
}

func (s *DynamoStore) Get(ctx context.Context, table, id string) (Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       Item{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get %s/%s: %w", table, id, err)
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}
	return out.Item, nil
}

func (s *DynamoStore) Put(ctx context.Context, table string, item Item) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %s: %w", table, err)
	}
	return nil
}

func (s *DynamoStore) Delete(ctx context.Context, table, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       Item{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return fmt.Errorf("dynamodb delete %s/%s: %w", table, id, err)
	}
	return nil
}

func (s *DynamoStore) Scan(ctx context.Context, table string) ([]Item, error) {
	var items []Item

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var rnf *types.ResourceNotFoundException
			if errors.As(err, &rnf) {
				log.Printf("table %s not found, returning empty scan", table)
				return nil, nil
			}
			return nil, fmt.Errorf("dynamodb scan %s: %w", table, err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// EnsureTables creates the given tables with on-demand billing if they do
// not already exist. Used only for local development endpoints; production
// tables come from the deploy stack.
func (s *DynamoStore) EnsureTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName: aws.String(table),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			BillingMode: types.BillingModePayPerRequest,
		})
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return fmt.Errorf("create table %s: %w", table, err)
		}
		log.Printf("created table %s", table)
	}
	return nil
}
