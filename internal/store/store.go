package store

import (
	"errors"

	"github.com/pasarlink/pasarlink-golang/internal/models"
)

// ErrNotFound is returned when an owner or record does not exist.
var ErrNotFound = errors.New("not found")

// PartitionStore is the persistence boundary for order partitions: one
// durable list of order copies per owner id. There are no cross-key
// transactions; every Write replaces a single owner's list and nothing else.
type PartitionStore interface {
	// Read returns the owner's order list. A missing owner reads as empty,
	// not as an error.
	Read(ownerID int64) ([]models.Order, error)
	// Write replaces the owner's order list.
	Write(ownerID int64, orders []models.Order) error
	// ListOwnerIDs returns every owner id holding a partition. Used by the
	// counterparty scan and the admin union view.
	ListOwnerIDs() ([]int64, error)
}

// InboxStore holds per-user notification inboxes.
type InboxStore interface {
	Push(ownerID int64, n models.Notification) error
	// List returns the owner's notifications, unread first, newest first,
	// capped at limit.
	List(ownerID int64, limit int) ([]models.Notification, error)
	// MarkRead flags one notification as read. Returns false if the id does
	// not exist in the owner's inbox.
	MarkRead(ownerID int64, notificationID string) (bool, error)
}

// UserStore is the narrow slice of the identity collaborator the API needs.
type UserStore interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
}
