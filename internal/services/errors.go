// Package services defines the business logic for contact messages. This
// file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrMissingFields is returned when a submission or an edit would leave
	// one of the required contact fields (name, email, phone, message) empty.
	ErrMissingFields = errors.New("please provide all details")

	// ErrContactNotFound indicates that the requested contact does not exist.
	ErrContactNotFound = errors.New("contact not found")

	// ErrEmptyPatch is returned when an edit request contains no editable
	// fields at all.
	ErrEmptyPatch = errors.New("no fields to update")
)
