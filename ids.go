package metadb

import "github.com/google/uuid"

// IdentifierFormat selects, per call, whether the external representation of
// an identifier is a human-readable name or a canonical UUID string. It is
// supplied by the caller and never stored.
type IdentifierFormat int

const (
	FormatName IdentifierFormat = iota
	FormatUUID
)

// ServerID, DatabaseID and TableID are opaque stable identifiers keying into
// the metadata snapshot. They share the UUID representation but belong to
// distinct namespaces and are deliberately distinct types so they cannot be
// mixed up.
type (
	ServerID   uuid.UUID
	DatabaseID uuid.UUID
	TableID    uuid.UUID
)

// String renders the canonical lowercase-hyphenated UUID form.
func (id ServerID) String() string   { return uuid.UUID(id).String() }
func (id DatabaseID) String() string { return uuid.UUID(id).String() }
func (id TableID) String() string    { return uuid.UUID(id).String() }

func (id ServerID) UUID() uuid.UUID   { return uuid.UUID(id) }
func (id DatabaseID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id TableID) UUID() uuid.UUID    { return uuid.UUID(id) }
