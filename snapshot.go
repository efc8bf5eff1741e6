package metadb

// Metadata entries as visible to conversion code. Deletion is soft: a
// tombstoned entry stays in the snapshot with Deleted set, and every lookup
// helper below filters on that flag, so the "tombstoned means absent" rule
// lives in this file only. The single exception (substituting a sentinel
// name for a table's deleted parent database) is in resolver.go.

type ServerEntry struct {
	Name    Name
	Deleted bool
}

type DatabaseEntry struct {
	Name    Name
	Deleted bool
}

type TableEntry struct {
	Name     Name
	Database DatabaseID
	Deleted  bool
}

// Snapshot is a read-only view of cluster metadata at one point in time.
// It is immutable after construction and safe to share across goroutines;
// resolver calls take it as an explicit parameter so that resolution logic
// stays testable against synthetic snapshots.
type Snapshot struct {
	servers       map[ServerID]ServerEntry
	databases     map[DatabaseID]DatabaseEntry
	tables        map[TableID]TableEntry
	serversByName map[string][]ServerID // includes tombstoned entries, filtered on read
}

// NewSnapshot builds a snapshot from entry maps, adopting them (the caller
// must not modify the maps afterwards). Nil maps are allowed.
func NewSnapshot(servers map[ServerID]ServerEntry, databases map[DatabaseID]DatabaseEntry, tables map[TableID]TableEntry) *Snapshot {
	snap := &Snapshot{
		servers:       servers,
		databases:     databases,
		tables:        tables,
		serversByName: make(map[string][]ServerID, len(servers)),
	}
	for id, e := range servers {
		key := e.Name.Str()
		snap.serversByName[key] = append(snap.serversByName[key], id)
	}
	return snap
}

// SearchStatus classifies the outcome of a by-name search over live entries.
type SearchStatus int

const (
	SearchNone SearchStatus = iota
	SearchUnique
	SearchMultiple
)

// ServerName returns the name of a live server, or false if the id is
// unknown or tombstoned.
func (snap *Snapshot) ServerName(id ServerID) (Name, bool) {
	e, ok := snap.servers[id]
	if !ok || e.Deleted {
		return Name{}, false
	}
	return e.Name, true
}

// DatabaseName returns the name of a live database, or false if the id is
// unknown or tombstoned.
func (snap *Snapshot) DatabaseName(id DatabaseID) (Name, bool) {
	e, ok := snap.databases[id]
	if !ok || e.Deleted {
		return Name{}, false
	}
	return e.Name, true
}

// Table returns the entry of a live table, or false if the id is unknown or
// tombstoned.
func (snap *Snapshot) Table(id TableID) (TableEntry, bool) {
	e, ok := snap.tables[id]
	if !ok || e.Deleted {
		return TableEntry{}, false
	}
	return e, true
}

// FindServer looks up a server by name via the reverse index, counting live
// entries only. The returned id is meaningful only for SearchUnique.
func (snap *Snapshot) FindServer(name Name) (ServerID, SearchStatus) {
	var found ServerID
	var count int
	for _, id := range snap.serversByName[name.Str()] {
		if e := snap.servers[id]; !e.Deleted {
			found = id
			count++
		}
	}
	return found, searchStatus(count)
}

// FindDatabase looks up a database by name, counting live entries only.
func (snap *Snapshot) FindDatabase(name Name) (DatabaseID, SearchStatus) {
	var found DatabaseID
	var count int
	for id, e := range snap.databases {
		if !e.Deleted && e.Name == name {
			found = id
			count++
		}
	}
	return found, searchStatus(count)
}

// FindTable looks up a table by name within a database, counting live
// entries only. Table names are unique per database, not cluster-wide.
func (snap *Snapshot) FindTable(db DatabaseID, name Name) (TableID, SearchStatus) {
	var found TableID
	var count int
	for id, e := range snap.tables {
		if !e.Deleted && e.Database == db && e.Name == name {
			found = id
			count++
		}
	}
	return found, searchStatus(count)
}

func searchStatus(count int) SearchStatus {
	switch count {
	case 0:
		return SearchNone
	case 1:
		return SearchUnique
	default:
		return SearchMultiple
	}
}

// searchError turns a failed by-name search into the error reported to
// clients. what is the capitalized namespace ("Server", "Database", "Table").
func searchError(status SearchStatus, what string, name Name) error {
	switch status {
	case SearchNone:
		return notFoundf("%s `%s` does not exist.", what, name.Str())
	case SearchMultiple:
		return ambiguousf("%s `%s` is ambiguous; there are multiple %ss with that name.",
			what, name.Str(), lowercase(what))
	default:
		panic("searchError called on a successful search")
	}
}

func lowercase(what string) string {
	if what == "" {
		return what
	}
	c := what[0]
	if c >= 'A' && c <= 'Z' {
		return string(c+'a'-'A') + what[1:]
	}
	return what
}
