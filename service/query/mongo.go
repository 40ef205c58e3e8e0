package query

/*
	Package `query` provides the interface for querying mongo db.
	It is a thin wrap over https://github.com/mongodb/mongo-go-driver;
	see https://godoc.org/go.mongodb.org/mongo-driver/mongo for details.
*/

import (
	"fmt"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

// Mongo abstracts the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne gets data from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns the count of matched entries in the table
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert updates an entry if the selector already exists, inserts it otherwise
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sorts by the `sort` argument (e.g. "timestamp" ascending or
	// "-timestamp" descending); an empty sort leaves the order unspecified.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove removes an entry from the table.
	// Returns ErrNotFound if the selector does not match any document.
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// RemoveAll removes all entries matching the selector from the table
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)

	// Patch patches an entry; returns ErrNotFound if the selector does not
	// match any document.
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Increment increases a field atomically, inserting the entry when missing
	Increment(context ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error

	// RunWithTransaction runs `run` inside a mongo multi-document transaction.
	// Transactions are admitted through a token pool; with a pool size of 1
	// every mutating marketplace operation is fully serialized, which is the
	// execution model the settlement state machine assumes.
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
