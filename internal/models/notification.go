package models

import "time"

// NotificationVariant mirrors the toast styles shown to users.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is a user-visible message emitted by a store command.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
	CreatedAt   time.Time           `json:"created_at"`
}
