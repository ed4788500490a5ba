package param

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// UUID is the opaque identity token carried by every named entity in a
// register database. It is unique for the lifetime of the object it names
// and is used as a map key throughout the model.
type UUID string

// NewUUID returns a fresh random identity token: 32 lower-case hex digits,
// no dashes.
func NewUUID() UUID {
	u := uuid.New()
	return UUID(hex.EncodeToString(u[:]))
}
