// Package domain defines the persistence model for contact messages. The
// type is mapped with GORM and forms the core data layer of the contact
// backend.
package domain

import (
	"time"
)

// ContactMessage represents a single contact form submission. Records are
// created by the public intake endpoint and administered (filtered, edited,
// deleted) through the admin-facing endpoints.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned on creation.
//   - Subject: optional short subject line supplied by the submitter.
//   - Name / Email / Phone / Message: required submitter fields; presence is
//     enforced by the service layer before persistence.
//   - Status: optional triage state, mutable by administrative edits.
//   - UserID: optional owning user reference; bulk edit/delete operations
//     are scoped by this field.
//   - CargoName: optional alphabetic sort key (a-z / z-a listing order).
//   - CreatedAt / UpdatedAt: timestamps managed on write.
//
// There is no soft-delete marker: delete operations on this resource remove
// rows physically.
type ContactMessage struct {
	ID        string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	Subject   string    `json:"subject,omitempty"   gorm:"type:varchar(255)"`
	Name      string    `json:"name"                gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"               gorm:"type:varchar(255);not null;index"`
	Phone     string    `json:"phone"               gorm:"type:varchar(64);not null"`
	Message   string    `json:"message"             gorm:"type:text;not null"`
	Status    string    `json:"status,omitempty"    gorm:"type:varchar(64)"`
	UserID    string    `json:"user,omitempty"      gorm:"type:varchar(64);index:idx_contact_user"`
	CargoName string    `json:"cargoName,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"createdAt"           gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for ContactMessage.
func (ContactMessage) TableName() string { return "contact_messages" }
