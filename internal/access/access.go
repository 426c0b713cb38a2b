// Package access decides whether a requester may act on a record.
package access

import (
	"errors"

	"github.com/adanyl0v/go-study-planner/internal/models"
)

var (
	ErrAnonymous = errors.New("requester is not authenticated")
	ErrNotOwner  = errors.New("requester does not own the record")
)

// Owned is implemented by every user-scoped record. A nil record
// reports an empty owner.
type Owned interface {
	OwnerID() string
}

// Authorize returns nil only when the identity owns the record.
func Authorize(identity models.Identity, record Owned) error {
	if identity.Anonymous() {
		return ErrAnonymous
	}
	if record == nil || record.OwnerID() != identity.UserID {
		return ErrNotOwner
	}
	return nil
}
