// Package services – ContactService
//
// This file implements the ContactService, which owns the two halves of the
// contact feature: public submission intake (validate, persist, then queue
// the notification mails) and administration (filtered listing, point reads,
// single and bulk edits, single and bulk deletes).
//
// Service-level errors (e.g., ErrMissingFields, ErrContactNotFound) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ebubekeyz/ebube.dev-backend/internal/domain"
	"github.com/ebubekeyz/ebube.dev-backend/internal/mail"
	"github.com/ebubekeyz/ebube.dev-backend/internal/repo"
)

// ContactRepo defines the repository contract required by ContactService.
// Implementations are responsible for persistence of contact rows.
type ContactRepo interface {
	// CreateContact inserts a new contact row, assigning ID and timestamps.
	CreateContact(ctx context.Context, db *gorm.DB, m *domain.ContactMessage) (*domain.ContactMessage, error)

	// CountContacts returns the number of rows matching the filter.
	CountContacts(ctx context.Context, db *gorm.DB, f repo.ContactFilter) (int64, error)

	// ListContactsPage returns a page of rows matching the filter.
	ListContactsPage(ctx context.Context, db *gorm.DB, f repo.ContactFilter, sort string, offset, limit int) ([]domain.ContactMessage, error)

	// GetContact fetches a contact by ID.
	GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.ContactMessage, error)

	// UpdateContact applies a column patch to one contact and returns it.
	UpdateContact(ctx context.Context, db *gorm.DB, id string, patch map[string]any) (*domain.ContactMessage, error)

	// UpdateContactsByUser applies a column patch to every contact owned by
	// userID, returning matched/modified counts.
	UpdateContactsByUser(ctx context.Context, db *gorm.DB, userID string, patch map[string]any) (matched, modified int64, err error)

	// DeleteContact removes one contact.
	DeleteContact(ctx context.Context, db *gorm.DB, id string) error

	// DeleteContactsByUser removes every contact owned by userID.
	DeleteContactsByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error)

	// DeleteAllContacts empties the table.
	DeleteAllContacts(ctx context.Context, db *gorm.DB) (int64, error)
}

// CreateContactInput carries the submitter-supplied fields of a new contact.
type CreateContactInput struct {
	Subject   string
	Name      string
	Email     string
	Phone     string
	Message   string
	UserID    string
	CargoName string
}

// ContactPatch carries the optional fields of an edit. Nil means "leave
// unchanged"; a pointer to the empty string is an explicit (and, for required
// fields, invalid) value.
type ContactPatch struct {
	Subject   *string
	Name      *string
	Email     *string
	Phone     *string
	Message   *string
	Status    *string
	UserID    *string
	CargoName *string
}

// BulkResult summarizes a bulk write: how many rows the selector matched and
// how many were modified.
type BulkResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

// ContactService provides submission intake and contact administration. Both
// halves are stateless per call; all persistence goes through Repo and the
// injected DB handle.
type ContactService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the contact repository used by this service.
	Repo ContactRepo
	// Mail queues the post-submission notification mails. Nil disables
	// dispatch (the intake contract is unaffected).
	Mail *mail.Dispatcher

	// DefaultLimit is the page size applied when the caller supplies none.
	DefaultLimit int
}

// NewContactService constructs a ContactService with the default page size.
func NewContactService(db *gorm.DB, r ContactRepo, dispatcher *mail.Dispatcher) *ContactService {
	return &ContactService{
		DB:           db,
		Repo:         r,
		Mail:         dispatcher,
		DefaultLimit: 10,
	}
}

// Create validates and persists a new contact submission, then queues the
// admin notification and submitter acknowledgement mails fire-and-forget.
//
// Validation happens before any persistence or mail attempt: name, email,
// phone, and message must all be non-empty, otherwise ErrMissingFields is
// returned. Mail dispatch failures never surface here; by the time dispatch
// starts the row is committed and the caller's response is already decided.
func (s *ContactService) Create(ctx context.Context, in CreateContactInput) (*domain.ContactMessage, error) {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Phone) == "" ||
		strings.TrimSpace(in.Message) == "" {
		return nil, ErrMissingFields
	}

	m := &domain.ContactMessage{
		Subject:   in.Subject,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		UserID:    in.UserID,
		CargoName: in.CargoName,
	}
	created, err := s.Repo.CreateContact(ctx, s.DB, m)
	if err != nil {
		return nil, err
	}

	if s.Mail != nil {
		s.Mail.DispatchSubmission(created)
	}
	return created, nil
}

// List returns a page of contacts matching the filter, plus the total count
// of the filtered set. All supplied filters apply together (logical AND);
// page and limit are clamped to sane values.
func (s *ContactService) List(ctx context.Context, f repo.ContactFilter, sort string, page, limit int) ([]domain.ContactMessage, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.DefaultLimit
		if limit <= 0 {
			limit = 10
		}
	}
	offset := (page - 1) * limit

	total, err := s.Repo.CountContacts(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ContactMessage{}, 0, nil
	}

	items, err := s.Repo.ListContactsPage(ctx, s.DB, f, sort, offset, limit)
	return items, total, err
}

// Get fetches one contact by ID, mapping a missing row to ErrContactNotFound.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.ContactMessage, error) {
	m, err := s.Repo.GetContact(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return m, nil
}

// Update applies patch to one contact and returns the updated row. Field
// validation re-runs against the patch: blanking a required field is
// rejected with ErrMissingFields. A patch with no fields set at all is
// rejected with ErrEmptyPatch.
func (s *ContactService) Update(ctx context.Context, id string, patch ContactPatch) (*domain.ContactMessage, error) {
	cols, err := patch.columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, ErrEmptyPatch
	}

	m, err := s.Repo.UpdateContact(ctx, s.DB, id, cols)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return m, nil
}

// UpdateByUser applies patch to every contact owned by userID. Zero matched
// rows is a success with an all-zero summary.
func (s *ContactService) UpdateByUser(ctx context.Context, userID string, patch ContactPatch) (BulkResult, error) {
	cols, err := patch.columns()
	if err != nil {
		return BulkResult{}, err
	}

	matched, modified, err := s.Repo.UpdateContactsByUser(ctx, s.DB, userID, cols)
	if err != nil {
		return BulkResult{}, err
	}
	return BulkResult{Matched: matched, Modified: modified}, nil
}

// Delete removes one contact, mapping a missing row to ErrContactNotFound.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteContact(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}

// DeleteByUser removes every contact owned by userID and returns the number
// removed. Zero matches is a success.
func (s *ContactService) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return s.Repo.DeleteContactsByUser(ctx, s.DB, userID)
}

// DeleteAll empties the contact table and returns the number of rows
// removed. Authorization for this destructive operation is enforced at the
// HTTP boundary, not here.
func (s *ContactService) DeleteAll(ctx context.Context) (int64, error) {
	return s.Repo.DeleteAllContacts(ctx, s.DB)
}

// columns converts the patch into a column map for the repository, running
// field-level validation: required fields may be changed but not blanked.
func (p ContactPatch) columns() (map[string]any, error) {
	required := map[string]*string{
		"name":    p.Name,
		"email":   p.Email,
		"phone":   p.Phone,
		"message": p.Message,
	}
	for _, v := range required {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, ErrMissingFields
		}
	}

	cols := make(map[string]any, 8)
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("subject", p.Subject)
	set("name", p.Name)
	set("email", p.Email)
	set("phone", p.Phone)
	set("message", p.Message)
	set("status", p.Status)
	set("user_id", p.UserID)
	set("cargo_name", p.CargoName)
	return cols, nil
}
