// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ContactMessage model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a contact is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ebubekeyz/ebube.dev-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// Sort orders accepted by ListContactsPage. Unrecognized values leave the
// natural store order untouched.
const (
	SortLatest = "latest" // created_at descending
	SortOldest = "oldest" // created_at ascending
	SortAZ     = "a-z"    // cargo_name ascending
	SortZA     = "z-a"    // cargo_name descending
)

// ContactFilter carries the optional predicates of a contact listing. Zero
// values mean "not filtered". All populated predicates are combined with
// logical AND; Date is a case-insensitive substring match against the
// creation timestamp, the rest are exact matches.
type ContactFilter struct {
	Phone   string
	Message string
	Status  string
	Name    string
	Email   string
	Subject string
	Date    string
}

// apply folds the populated predicates into the given query.
func (f ContactFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Phone != "" {
		q = q.Where("phone = ?", f.Phone)
	}
	if f.Message != "" {
		q = q.Where("message = ?", f.Message)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Name != "" {
		q = q.Where("name = ?", f.Name)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	if f.Date != "" {
		q = q.Where("LOWER(CAST(created_at AS TEXT)) LIKE '%' || LOWER(?) || '%'", f.Date)
	}
	return q
}

// orderFor maps a sort keyword to an ORDER BY clause, or "" for natural order.
func orderFor(sort string) string {
	switch sort {
	case SortLatest:
		return "created_at DESC, id DESC"
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortAZ:
		return "cargo_name ASC"
	case SortZA:
		return "cargo_name DESC"
	default:
		return ""
	}
}

// CreateContact inserts a new contact row. The contact ID is a randomly
// generated UUID (string), and CreatedAt is set to UTC. The passed-in struct
// is mutated with the assigned ID and timestamps.
//
// On success, it returns the persisted ContactMessage. On failure, it returns
// a DB error.
func CreateContact(ctx context.Context, db *gorm.DB, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// CountContacts returns the number of contacts matching f. With a zero
// filter this is the full row count of the table.
func CountContacts(ctx context.Context, db *gorm.DB, f ContactFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.ContactMessage{})).
		Count(&total).Error
	return total, err
}

// ListContactsPage returns a page of contacts matching f, ordered per sort.
// Use CountContacts with the same filter to obtain the total for pagination
// metadata. On DB error, it returns the error.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*limit).
func ListContactsPage(ctx context.Context, db *gorm.DB, f ContactFilter, sort string, offset, limit int) ([]domain.ContactMessage, error) {
	var out []domain.ContactMessage
	q := f.apply(db.WithContext(ctx).Model(&domain.ContactMessage{}))
	if ord := orderFor(sort); ord != "" {
		q = q.Order(ord)
	}
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// GetContact fetches a single contact by its ID. If the record does not
// exist, it returns ErrNotFound. On other DB errors, the raw error is
// returned.
func GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateContact applies the given column patch to the contact identified by
// id and returns the updated row. If no rows are affected (contact missing),
// it returns ErrNotFound. On DB error, the raw error is returned.
//
// patch keys must be column names; the caller is responsible for restricting
// them to mutable fields.
func UpdateContact(ctx context.Context, db *gorm.DB, id string, patch map[string]any) (*domain.ContactMessage, error) {
	if len(patch) > 0 {
		res := db.WithContext(ctx).
			Model(&domain.ContactMessage{}).
			Where("id = ?", id).
			Updates(patch)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return GetContact(ctx, db, id)
}

// UpdateContactsByUser applies patch to every contact whose user_id equals
// userID. It returns the number of rows matched and the number modified.
// A zero match is not an error.
func UpdateContactsByUser(ctx context.Context, db *gorm.DB, userID string, patch map[string]any) (matched, modified int64, err error) {
	err = db.WithContext(ctx).
		Model(&domain.ContactMessage{}).
		Where("user_id = ?", userID).
		Count(&matched).Error
	if err != nil {
		return 0, 0, err
	}
	if matched == 0 || len(patch) == 0 {
		return matched, 0, nil
	}
	res := db.WithContext(ctx).
		Model(&domain.ContactMessage{}).
		Where("user_id = ?", userID).
		Updates(patch)
	if res.Error != nil {
		return 0, 0, res.Error
	}
	return matched, res.RowsAffected, nil
}

// DeleteContact removes the contact identified by id. If no rows are
// affected, it returns ErrNotFound. Deletion is physical.
func DeleteContact(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.ContactMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContactsByUser removes every contact whose user_id equals userID and
// returns the number of rows removed. A zero match is not an error.
func DeleteContactsByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.ContactMessage{})
	return res.RowsAffected, res.Error
}

// DeleteAllContacts removes every contact row unconditionally and returns the
// number of rows removed. GORM refuses an unconditioned DELETE by default, so
// the global-update session flag is set explicitly.
func DeleteAllContacts(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&domain.ContactMessage{})
	return res.RowsAffected, res.Error
}
