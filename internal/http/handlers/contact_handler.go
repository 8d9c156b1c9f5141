// Contact HTTP handlers.
//
// This file exposes the REST endpoints for the contact-message resource:
//   - POST   /contacts           (public submission intake)
//   - GET    /contacts           (list, filtered/sorted/paginated, ETag support)
//   - GET    /contacts/:id       (point read)
//   - PATCH  /contacts/:id       (edit one)
//   - PATCH  /contacts/user/:id  (bulk edit by owning user)
//   - DELETE /contacts/:id       (delete one)
//   - DELETE /contacts           (delete all, admin-gated)
//   - DELETE /contacts/user/:id  (bulk delete by owning user)
//
// Handlers are transport-thin: they validate input, call the contact service,
// and translate results into HTTP responses. Response bodies keep the shapes
// the frontend already consumes ({msg: ...} and {contact: ..., meta: ...}).
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ebubekeyz/ebube.dev-backend/internal/domain"
	"github.com/ebubekeyz/ebube.dev-backend/internal/repo"
	"github.com/ebubekeyz/ebube.dev-backend/internal/services"
	"github.com/ebubekeyz/ebube.dev-backend/internal/utils"
)

//
// Service contract (context-aware)
//

// ContactService defines the contact operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ContactService interface {
	// Create validates and persists a submission, then queues notification
	// mails best-effort.
	Create(ctx context.Context, in services.CreateContactInput) (*domain.ContactMessage, error)
	// List returns a page of contacts matching the filter plus the filtered
	// total.
	List(ctx context.Context, f repo.ContactFilter, sort string, page, limit int) ([]domain.ContactMessage, int64, error)
	// Get fetches one contact by ID.
	Get(ctx context.Context, id string) (*domain.ContactMessage, error)
	// Update applies a partial edit to one contact.
	Update(ctx context.Context, id string, patch services.ContactPatch) (*domain.ContactMessage, error)
	// UpdateByUser applies a partial edit to every contact owned by a user.
	UpdateByUser(ctx context.Context, userID string, patch services.ContactPatch) (services.BulkResult, error)
	// Delete removes one contact.
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every contact owned by a user.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	// DeleteAll empties the store.
	DeleteAll(ctx context.Context) (int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the contact resource. It depends on
// the abstract service interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	svc ContactService
}

// New constructs and returns a Handlers instance bound to the given service.
func New(svc ContactService) *Handlers {
	return &Handlers{svc: svc}
}

//
// DTOs
//

// CreateContactRequest is the JSON payload for a contact submission.
type CreateContactRequest struct {
	// Subject optionally labels the submission.
	Subject string `json:"subject" example:"Project enquiry"`
	// Name is the submitter's name (required).
	Name string `json:"name" example:"Ada Obi"`
	// Email is the submitter's address (required); the acknowledgement mail
	// is sent here.
	Email string `json:"email" example:"ada@example.com"`
	// Phone is the submitter's phone number (required).
	Phone string `json:"phone" example:"+2348012345678"`
	// Message is the submission body (required).
	Message string `json:"message" example:"I would like a quote for ..."`
	// User optionally links the submission to an account.
	User string `json:"user,omitempty" example:"u-42"`
	// CargoName optionally sets the alphabetic sort key.
	CargoName string `json:"cargoName,omitempty"`
}

// UpdateContactRequest is the JSON payload for editing contacts. Absent
// fields are left unchanged.
type UpdateContactRequest struct {
	Subject   *string `json:"subject,omitempty"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Message   *string `json:"message,omitempty"`
	Status    *string `json:"status,omitempty" example:"read"`
	User      *string `json:"user,omitempty"`
	CargoName *string `json:"cargoName,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page      int   `json:"page"`
	Total     int64 `json:"total"`
	PageCount int   `json:"pageCount"`
}

// ListMeta wraps pagination metadata the way the frontend expects it.
type ListMeta struct {
	Pagination Pagination `json:"pagination"`
}

// ListContactsResponse wraps a page of contacts and pagination information.
type ListContactsResponse struct {
	Contact []domain.ContactMessage `json:"contact"`
	Meta    ListMeta                `json:"meta"`
}

// ContactResponse wraps a single contact record.
type ContactResponse struct {
	Contact *domain.ContactMessage `json:"contact"`
}

// BulkContactResponse wraps the summary of a bulk edit.
type BulkContactResponse struct {
	Contact services.BulkResult `json:"contact"`
}

// MsgResponse is the terse acknowledgement body used by create and delete.
type MsgResponse struct {
	Msg string `json:"msg" example:"Thank you for your submission!"`
}

//
// Helpers
//

// clampPagination parses and bounds page and limit query params to sane
// defaults and limits, returning (page, limit).
func clampPagination(c *gin.Context) (page, limit int) {
	const (
		defaultPage  = 1
		defaultLimit = 10
		maxLimit     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return
}

// filterFromQuery collects the optional filter predicates of a list request.
// Every populated predicate applies; they are combined with AND downstream.
func filterFromQuery(c *gin.Context) repo.ContactFilter {
	return repo.ContactFilter{
		Phone:   c.Query("phone"),
		Message: c.Query("message"),
		Status:  c.Query("status"),
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Subject: c.Query("subject"),
		Date:    c.Query("date"),
	}
}

// patchFromRequest converts the transport DTO into the service patch type.
func patchFromRequest(req UpdateContactRequest) services.ContactPatch {
	return services.ContactPatch{
		Subject:   req.Subject,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		Status:    req.Status,
		UserID:    req.User,
		CargoName: req.CargoName,
	}
}

//
// Handlers
//

// CreateContact godoc
// @ID          createContact
// @Summary     Submit a contact message
// @Description Validates and stores a contact submission, then sends the owner
// @Description notification and submitter acknowledgement mails best-effort.
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateContactRequest  true  "Submission payload"
//
// @Success     201  {object}  handlers.MsgResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing required fields"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contacts [post]
func (h *Handlers) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	_, err := h.svc.Create(c.Request.Context(), services.CreateContactInput{
		Subject:   req.Subject,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		UserID:    req.User,
		CargoName: req.CargoName,
	})
	if err != nil {
		if err == services.ErrMissingFields {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "please provide all details")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	ok(c, http.StatusCreated, MsgResponse{Msg: "Thank you for your submission!"})
}

// ListContacts godoc
// @ID          listContacts
// @Summary     List contact messages
// @Description Returns a filtered, sorted, paginated page of contacts with
// @Description pagination metadata. Supports weak ETag via If-None-Match.
// @Tags        Contacts
// @Produce     json
//
// @Param       date           query   string  false "Substring match on creation date"
// @Param       status         query   string  false "Exact status match"
// @Param       subject        query   string  false "Exact subject match"
// @Param       name           query   string  false "Exact name match"
// @Param       email          query   string  false "Exact email match"
// @Param       phone          query   string  false "Exact phone match"
// @Param       message        query   string  false "Exact message match"
// @Param       sort           query   string  false "latest | oldest | a-z | z-a"
// @Param       page           query   int     false "Page number"      minimum(1) default(1)
// @Param       limit          query   int     false "Items per page"   minimum(1) maximum(100) default(10)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {object} handlers.ListContactsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts [get]
func (h *Handlers) ListContacts(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := clampPagination(c)
	filter := filterFromQuery(c)
	sort := c.Query("sort")

	// ETag pre-check (best effort). The tag must vary with the query, not
	// just table state, so the raw query string is folded in.
	var db *gorm.DB
	if svc, okCast := h.svc.(*services.ContactService); okCast {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.ContactsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"contacts:%d:%d:%s"`, count, ts, c.Request.URL.RawQuery)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.svc.List(ctx, filter, sort, page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, ListContactsResponse{
		Contact: items,
		Meta: ListMeta{
			Pagination: Pagination{
				Page:      page,
				Total:     total,
				PageCount: utils.CeilDiv(total, limit),
			},
		},
	})
}

// GetContact godoc
// @ID          getContact
// @Summary     Fetch one contact message
// @Tags        Contacts
// @Produce     json
//
// @Param       id  path  string  true  "Contact ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.ContactResponse
// @Failure     400  {object} handlers.ErrorResponse "Unknown contact id"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts/{id} [get]
func (h *Handlers) GetContact(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "contact id must be a UUID")
		return
	}

	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if err == services.ErrContactNotFound {
			// The API reports unknown ids as bad requests, not 404s; clients
			// already depend on that.
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("Contact with id %s does not exist", id))
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ContactResponse{Contact: m})
}

// UpdateContact godoc
// @ID          updateContact
// @Summary     Edit one contact message
// @Description Applies the supplied fields to the contact; required fields may
// @Description be changed but not blanked.
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                          true  "Contact ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateContactRequest   true  "Partial fields"
//
// @Success     200  {object} handlers.ContactResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request or unknown id"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts/{id} [patch]
func (h *Handlers) UpdateContact(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "contact id must be a UUID")
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.svc.Update(c.Request.Context(), id, patchFromRequest(req))
	if err != nil {
		switch err {
		case services.ErrContactNotFound:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("Contact with id %s does not exist", id))
		case services.ErrMissingFields, services.ErrEmptyPatch:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ContactResponse{Contact: m})
}

// UpdateUserContacts godoc
// @ID          updateUserContacts
// @Summary     Edit all contacts owned by a user
// @Description Applies the supplied fields to every contact whose user field
// @Description matches; zero matches is a success with an all-zero summary.
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                         true  "Owning user ID"
// @Param       body  body  handlers.UpdateContactRequest  true  "Partial fields"
//
// @Success     200  {object} handlers.BulkContactResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing admin token"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts/user/{id} [patch]
func (h *Handlers) UpdateUserContacts(c *gin.Context) {
	userID := c.Param("id")

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	res, err := h.svc.UpdateByUser(c.Request.Context(), userID, patchFromRequest(req))
	if err != nil {
		if err == services.ErrMissingFields {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, BulkContactResponse{Contact: res})
}

// DeleteContact godoc
// @ID          deleteContact
// @Summary     Delete one contact message
// @Tags        Contacts
// @Produce     json
//
// @Param       id  path  string  true  "Contact ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.MsgResponse
// @Failure     400  {object} handlers.ErrorResponse "Unknown contact id"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts/{id} [delete]
func (h *Handlers) DeleteContact(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "contact id must be a UUID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if err == services.ErrContactNotFound {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("Contact with id %s does not exist", id))
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, MsgResponse{Msg: "Contact Deleted"})
}

// DeleteAllContacts godoc
// @ID          deleteAllContacts
// @Summary     Delete every contact message
// @Description Unconditionally empties the contact store. Requires the admin
// @Description token.
// @Tags        Contacts
// @Produce     json
//
// @Param       X-Admin-Token  header  string  true  "Admin token"
//
// @Success     200  {object} handlers.MsgResponse
// @Failure     401  {object} handlers.ErrorResponse "Missing or wrong admin token"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts [delete]
func (h *Handlers) DeleteAllContacts(c *gin.Context) {
	if _, err := h.svc.DeleteAll(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, MsgResponse{Msg: "Contact Deleted"})
}

// DeleteUserContacts godoc
// @ID          deleteUserContacts
// @Summary     Delete all contacts owned by a user
// @Description Removes every contact whose user field matches; zero matches is
// @Description a success.
// @Tags        Contacts
// @Produce     json
//
// @Param       id             path    string  true  "Owning user ID"
// @Param       X-Admin-Token  header  string  true  "Admin token"
//
// @Success     200  {object} handlers.MsgResponse
// @Failure     401  {object} handlers.ErrorResponse "Missing or wrong admin token"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /contacts/user/{id} [delete]
func (h *Handlers) DeleteUserContacts(c *gin.Context) {
	userID := c.Param("id")
	if _, err := h.svc.DeleteByUser(c.Request.Context(), userID); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, MsgResponse{Msg: "Contact successfully deleted"})
}
