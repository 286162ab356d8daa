package storage

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Table names used by the service. The tables are provisioned out of band;
// the adapter never creates them in production.
const (
	HotelsTable    = "hotels"
	RoomsTable     = "rooms"
	CustomersTable = "customers"
	BookingsTable  = "bookings"
)

var (
	// ErrItemNotFound is returned by Get when the item does not exist.
	// Infrastructure failures are returned as distinct errors so callers
	// can tell absence from a transient outage.
	ErrItemNotFound = errors.New("item not found")
)

// Item is a flat attribute map, the unit of storage for every entity.
type Item = map[string]types.AttributeValue

// Store is a key-value table abstraction: point reads and writes by id plus
// a full scan. There are no transactions and no secondary indexes; the
// repositories filter scan results in memory.
type Store interface {
	Get(ctx context.Context, table, id string) (Item, error)
	Put(ctx context.Context, table string, item Item) error
	Delete(ctx context.Context, table, id string) error
	// Scan drains every page of the table. A missing table yields an empty
	// result rather than an error; bulk reads tolerate a not-yet-provisioned
	// table, point reads do not.
	Scan(ctx context.Context, table string) ([]Item, error)
}
