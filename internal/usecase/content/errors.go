// Package content provides use cases for managing content items.
// It implements business logic for creating, updating, deleting, and querying
// scheduled content, including ownership checks and plan quota enforcement.
package content

import "errors"

// Sentinel errors for content use case operations.
var (
	// ErrContentNotFound indicates that the requested content item was not
	// found, or belongs to a different user. Items of other users are
	// indistinguishable from missing ones.
	ErrContentNotFound = errors.New("content item not found")

	// ErrInvalidContentID indicates that the provided content item ID is
	// invalid. IDs must be positive integers.
	ErrInvalidContentID = errors.New("invalid content item ID")

	// ErrQuotaExceeded indicates that the operation would push the user past
	// the item limit of their subscription plan.
	ErrQuotaExceeded = errors.New("plan item quota exceeded")
)
