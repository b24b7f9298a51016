// Package store persists per-user search history in a keyed document store.
package store

import (
	"context"

	"github.com/arsh246/weather-app/internal/models"
)

// SearchUpdate carries the only two fields a history update may change.
type SearchUpdate struct {
	Temperature float64 `json:"temperature"`
	Weather     string  `json:"weather"`
}

// HistoryStore is the per-user search history abstraction. Every method is
// scoped to the given user id; an id that exists under another user behaves
// exactly like a missing id.
type HistoryStore interface {
	// Append stores a new record and returns its assigned id. It never
	// overwrites an existing record.
	Append(ctx context.Context, userID string, rec models.SearchRecord) (string, error)

	// List returns the user's records with their ids. Order is not guaranteed.
	List(ctx context.Context, userID string) ([]models.StoredSearch, error)

	// Update modifies temperature and weather of one record. ErrNotFound if
	// the id is absent from the user's collection.
	Update(ctx context.Context, userID, id string, upd SearchUpdate) error

	// Delete removes one record. ErrNotFound under the same condition as Update.
	Delete(ctx context.Context, userID, id string) error

	// ExportAll returns the user's records without ids.
	ExportAll(ctx context.Context, userID string) ([]models.SearchRecord, error)
}

// ownerKey maps a verified user id onto the storage owner key. Kept as an
// explicit seam so the storage layout can change without touching the
// identity contract.
func ownerKey(userID string) string {
	return userID
}
