// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as ContentItem and User, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Platform is the enumerated category of a content item.
type Platform string

// Valid platforms for content items.
const (
	PlatformSocial Platform = "social"
	PlatformEmail  Platform = "email"
	PlatformBlog   Platform = "blog"
)

// Status is the enumerated lifecycle label of a content item.
type Status string

// Valid statuses for content items.
const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPosted    Status = "posted"
)

// Platforms lists every valid platform, in display order.
func Platforms() []Platform {
	return []Platform{PlatformSocial, PlatformEmail, PlatformBlog}
}

// Statuses lists every valid status, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusScheduled, StatusPosted}
}

// Valid reports whether p is a member of the platform enum.
func (p Platform) Valid() bool {
	switch p {
	case PlatformSocial, PlatformEmail, PlatformBlog:
		return true
	}
	return false
}

// Valid reports whether s is a member of the status enum.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPosted:
		return true
	}
	return false
}

// ContentItem represents a piece of content scheduled on the calendar.
// It carries the item's metadata, its platform and lifecycle status, and
// the time it is scheduled to go out.
type ContentItem struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Platform    Platform
	Status      Status
	ScheduledAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the enum memberships and required fields of the item.
// Membership of Platform and Status in their enumerated sets is the one
// invariant enforced at this layer.
func (c *ContentItem) Validate() error {
	if c.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(c.Title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: "is too long"}
	}
	if !c.Platform.Valid() {
		return &ValidationError{Field: "platform", Message: "must be one of social, email, blog"}
	}
	if !c.Status.Valid() {
		return &ValidationError{Field: "status", Message: "must be one of draft, scheduled, posted"}
	}
	return nil
}
