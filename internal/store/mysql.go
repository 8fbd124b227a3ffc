package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pasarlink/pasarlink-golang/internal/models"
)

// MySQLStore persists partitions and inboxes in MySQL. Each owner's order
// list is one row holding a serialized JSON document, so a Write touches
// exactly one key — there is deliberately no transaction spanning the
// buyer-side and seller-side rows.
type MySQLStore struct {
	DB *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{DB: db}
}

var (
	_ PartitionStore = (*MySQLStore)(nil)
	_ InboxStore     = (*MySQLStore)(nil)
	_ UserStore      = (*MySQLStore)(nil)
)

func (s *MySQLStore) Read(ownerID int64) ([]models.Order, error) {
	var raw []byte
	err := s.DB.QueryRow("SELECT orders FROM order_partitions WHERE owner_id = ?", ownerID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return []models.Order{}, nil // missing owner reads as empty
		}
		return nil, fmt.Errorf("failed to read partition %d: %w", ownerID, err)
	}

	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode partition %d: %w", ownerID, err)
	}

	// Defensive defaulting: records written before the review feature carry
	// no reviewedItems field and decode with a nil map.
	for i := range orders {
		if orders[i].ReviewedItems == nil {
			orders[i].ReviewedItems = make(map[int64]bool)
		}
	}
	return orders, nil
}

func (s *MySQLStore) Write(ownerID int64, orders []models.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to encode partition %d: %w", ownerID, err)
	}

	query := `
		INSERT INTO order_partitions (owner_id, orders, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			orders = VALUES(orders),
			updated_at = VALUES(updated_at)`

	if _, err := s.DB.Exec(query, ownerID, raw, time.Now()); err != nil {
		return fmt.Errorf("failed to write partition %d: %w", ownerID, err)
	}
	return nil
}

func (s *MySQLStore) ListOwnerIDs() ([]int64, error) {
	rows, err := s.DB.Query("SELECT owner_id FROM order_partitions ORDER BY owner_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list partition owners: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *MySQLStore) Push(ownerID int64, n models.Notification) error {
	var nullLink sql.NullString
	if n.Link != "" {
		nullLink = sql.NullString{String: n.Link, Valid: true}
	}

	query := `
		INSERT INTO notifications
		(id, user_id, message, link, is_read, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`

	if _, err := s.DB.Exec(query, n.ID, ownerID, n.Message, nullLink, n.CreatedAt); err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

func (s *MySQLStore) List(ownerID int64, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY is_read ASC, created_at DESC
		LIMIT ?`

	rows, err := s.DB.Query(query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var link sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Link = link.String
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *MySQLStore) MarkRead(ownerID int64, notificationID string) (bool, error) {
	result, err := s.DB.Exec(
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?",
		notificationID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to update notification: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *MySQLStore) GetByEmail(email string) (*models.User, error) {
	return s.getUser("SELECT id, role, email, password_hash, full_name, created_at FROM users WHERE email = ?", email)
}

func (s *MySQLStore) GetByID(id int64) (*models.User, error) {
	return s.getUser("SELECT id, role, email, password_hash, full_name, created_at FROM users WHERE id = ?", id)
}

func (s *MySQLStore) getUser(query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRow(query, arg).Scan(
		&u.ID, &u.Role, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}
