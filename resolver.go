package metadb

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/andreyvit/metadb/datum"
)

// Identifier resolution between external form (name or UUID, per
// IdentifierFormat) and internal stable ids, against an explicit metadata
// snapshot. The UUID encode direction never touches the snapshot and cannot
// be ambiguous; everything else goes through the live-only lookups in
// snapshot.go.

// DeletedDatabaseName is substituted for the owning database's name when
// resolving a table whose database has been tombstoned out from under it.
// This is the single exception to "tombstoned means absent": it keeps read
// paths that list tables working across a concurrent database drop.
var DeletedDatabaseName = MustName("__deleted_database__")

// NameOrUUIDToDatum renders an identifier in the requested external format.
func NameOrUUIDToDatum(name Name, id uuid.UUID, format IdentifierFormat) datum.Datum {
	if format == FormatName {
		return NameToDatum(name)
	}
	return UUIDToDatum(id)
}

// ServerIDToDatum renders a server id in the requested format, also yielding
// the server's current name. Returns false if the id is unknown or
// tombstoned; callers are expected to encode only known-live servers.
func ServerIDToDatum(id ServerID, format IdentifierFormat, snap *Snapshot) (datum.Datum, Name, bool) {
	name, ok := snap.ServerName(id)
	if !ok {
		return datum.Datum{}, Name{}, false
	}
	return NameOrUUIDToDatum(name, id.UUID(), format), name, true
}

// ServerIDFromDatum resolves a client-supplied server identifier.
//
// In name format, the name must match exactly one live server: zero matches
// fail with NotFound, several with Ambiguous. In UUID format, the text must
// parse as a UUID and match a live server.
func ServerIDFromDatum(d datum.Datum, format IdentifierFormat, snap *Snapshot) (ServerID, Name, error) {
	if format == FormatName {
		name, err := NameFromDatum(d, "server name")
		if err != nil {
			return ServerID{}, Name{}, err
		}
		id, status := snap.FindServer(name)
		if status != SearchUnique {
			return ServerID{}, Name{}, searchError(status, "Server", name)
		}
		return id, name, nil
	}

	value, err := UUIDFromDatum(d)
	if err != nil {
		return ServerID{}, Name{}, err
	}
	id := ServerID(value)
	name, ok := snap.ServerName(id)
	if !ok {
		return ServerID{}, Name{}, notFoundf("There is no server with UUID `%s`.", id)
	}
	return id, name, nil
}

// DatabaseIDToDatum renders a database id in the requested format, also
// yielding the database's current name. The id must be present in the
// snapshot (encoding an id that was never there is a bug in the caller);
// a tombstoned entry yields false.
func DatabaseIDToDatum(id DatabaseID, format IdentifierFormat, snap *Snapshot) (datum.Datum, Name, bool) {
	e, ok := snap.databases[id]
	if !ok {
		panic(fmt.Sprintf("database %v missing from snapshot", id))
	}
	if e.Deleted {
		return datum.Datum{}, Name{}, false
	}
	return NameOrUUIDToDatum(e.Name, id.UUID(), format), e.Name, true
}

// DatabaseIDFromDatum resolves a client-supplied database identifier, with
// the same name/UUID branch semantics as ServerIDFromDatum.
func DatabaseIDFromDatum(d datum.Datum, format IdentifierFormat, snap *Snapshot) (DatabaseID, Name, error) {
	if format == FormatName {
		name, err := NameFromDatum(d, "database name")
		if err != nil {
			return DatabaseID{}, Name{}, err
		}
		id, status := snap.FindDatabase(name)
		if status != SearchUnique {
			return DatabaseID{}, Name{}, searchError(status, "Database", name)
		}
		return id, name, nil
	}

	value, err := UUIDFromDatum(d)
	if err != nil {
		return DatabaseID{}, Name{}, err
	}
	id := DatabaseID(value)
	name, ok := snap.DatabaseName(id)
	if !ok {
		return DatabaseID{}, Name{}, notFoundf("There is no database with UUID `%s`.", id)
	}
	return id, name, nil
}

// TableIdentity is the result of resolving a table id for display: the table
// itself plus its owning database, each as both a datum in the requested
// format and a plain name.
type TableIdentity struct {
	Table        datum.Datum
	TableName    Name
	Database     datum.Datum
	DatabaseName Name
}

// TableIDToDatums resolves a table id together with its owning database.
// Returns false if the table itself is unknown or tombstoned. If only the
// owning database is tombstoned, resolution still succeeds and the database
// name comes out as DeletedDatabaseName.
func TableIDToDatums(id TableID, format IdentifierFormat, snap *Snapshot) (TableIdentity, bool) {
	e, ok := snap.Table(id)
	if !ok {
		return TableIdentity{}, false
	}
	dbName, ok := snap.DatabaseName(e.Database)
	if !ok {
		dbName = DeletedDatabaseName
	}
	return TableIdentity{
		Table:        NameOrUUIDToDatum(e.Name, id.UUID(), format),
		TableName:    e.Name,
		Database:     NameOrUUIDToDatum(dbName, e.Database.UUID(), format),
		DatabaseName: dbName,
	}, true
}

// TableIDFromDatum resolves a client-supplied table identifier. Table names
// are unique only within a database, so the name branch is scoped to db;
// the UUID branch ignores db because table ids are cluster-wide.
func TableIDFromDatum(d datum.Datum, format IdentifierFormat, db DatabaseID, snap *Snapshot) (TableID, Name, error) {
	if format == FormatName {
		name, err := NameFromDatum(d, "table name")
		if err != nil {
			return TableID{}, Name{}, err
		}
		id, status := snap.FindTable(db, name)
		if status != SearchUnique {
			return TableID{}, Name{}, searchError(status, "Table", name)
		}
		return id, name, nil
	}

	value, err := UUIDFromDatum(d)
	if err != nil {
		return TableID{}, Name{}, err
	}
	id := TableID(value)
	e, ok := snap.Table(id)
	if !ok {
		return TableID{}, Name{}, notFoundf("There is no table with UUID `%s`.", id)
	}
	return id, e.Name, nil
}
