package types

import "context"

// Catalog defines the storage operations for collection items.
// Callers attach to a backend, run item operations, and detach when done.
// Every data operation holds the backend's connection exclusively for its
// duration.
type Catalog interface {
	// Attach connects the Catalog to the backend described by config.
	// Creates the DataDir if it does not exist and initializes the schema
	// idempotently. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, item operations return ErrCatalogDetached.
	Detach() error

	// Insert validates and stores a new item, assigns its ID and returns it.
	// A zero DateAdded defaults to today; a zero LastUpdated defaults to
	// DateAdded.
	Insert(ctx context.Context, item *Item) (int64, error)

	// Get returns the item with the given ID, including soft-deleted items.
	// Returns a *NotFoundError if no item has that ID.
	Get(ctx context.Context, id int64) (*Item, error)

	// List returns every item that is not soft-deleted. It is equivalent to
	// Filter with an empty ItemFilter.
	List(ctx context.Context) ([]Item, error)

	// Filter returns the items matching every criterion set in filter.
	// Soft-deleted items are excluded unless filter.Deleted is set.
	Filter(ctx context.Context, filter ItemFilter) ([]Item, error)

	// Replace overwrites every field of the stored item with item.ID and
	// refreshes LastUpdated.
	Replace(ctx context.Context, item *Item) error

	// UpdateFields applies a sparse field-name to raw-value map to one item.
	// Either every field is applied or none is.
	UpdateFields(ctx context.Context, id int64, updates map[string]string) (*Item, error)

	// SoftDelete marks the item deleted and refreshes LastUpdated.
	SoftDelete(ctx context.Context, id int64) error
}
