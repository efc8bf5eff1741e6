package metadb

import (
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// Store owns the cluster metadata entries and hands out immutable snapshots
// for conversion code to resolve against. Writes persist through a backend
// (bolt on disk, or transient memory in tests) before touching the in-memory
// maps. Deletes are tombstones: the entry stays, flagged Deleted, forever.
//
// The mutex discipline follows the snapshot contract: Snapshot holds the
// read lock only while cloning the maps, so no lock is ever held across a
// decode or encode call.
type Store struct {
	mu        sync.RWMutex
	servers   map[ServerID]ServerEntry
	databases map[DatabaseID]DatabaseEntry
	tables    map[TableID]TableEntry
	backend   storeBackend
	logf      func(format string, args ...any)
	verbose   bool
}

type Options struct {
	Logf      func(format string, args ...any)
	Verbose   bool
	IsTesting bool
}

// entryRecord is the persisted form of a metadata entry.
type entryRecord struct {
	Name     string `msgpack:"n"`
	Deleted  bool   `msgpack:"d"`
	Database []byte `msgpack:"db,omitempty"` // owning database id, tables only
}

const (
	serversNamespace   = "servers"
	databasesNamespace = "databases"
	tablesNamespace    = "tables"
)

type storeBackend interface {
	// PutRecord persists rec under id within the given namespace.
	PutRecord(namespace string, id uuid.UUID, rec entryRecord) error
	// LoadAll replays every persisted record, in no particular order.
	LoadAll(fn func(namespace string, id uuid.UUID, rec entryRecord) error) error
	Close() error
}

// OpenStore opens a bolt-backed store at path.
func OpenStore(path string, opt Options) (*Store, error) {
	backend, err := openBoltBackend(path, opt.IsTesting)
	if err != nil {
		return nil, err
	}
	st, err := newStore(backend, opt)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return st, nil
}

// OpenMemStore returns a transient in-memory store intended for tests.
func OpenMemStore(opt Options) *Store {
	st, err := newStore(newMemBackend(), opt)
	if err != nil {
		panic(err) // memory backend cannot fail to load
	}
	return st
}

func newStore(backend storeBackend, opt Options) (*Store, error) {
	st := &Store{
		servers:   make(map[ServerID]ServerEntry),
		databases: make(map[DatabaseID]DatabaseEntry),
		tables:    make(map[TableID]TableEntry),
		backend:   backend,
		logf:      opt.Logf,
		verbose:   opt.Verbose,
	}
	err := backend.LoadAll(st.applyRecord)
	if err != nil {
		return nil, fmt.Errorf("metadb: %w", err)
	}
	return st, nil
}

func (st *Store) applyRecord(namespace string, id uuid.UUID, rec entryRecord) error {
	name, ok := MakeName(rec.Name)
	if !ok {
		return fmt.Errorf("invalid stored name %q in %s", rec.Name, namespace)
	}
	switch namespace {
	case serversNamespace:
		st.servers[ServerID(id)] = ServerEntry{name, rec.Deleted}
	case databasesNamespace:
		st.databases[DatabaseID(id)] = DatabaseEntry{name, rec.Deleted}
	case tablesNamespace:
		db, err := uuid.FromBytes(rec.Database)
		if err != nil {
			return fmt.Errorf("invalid stored database id for table %v: %w", id, err)
		}
		st.tables[TableID(id)] = TableEntry{name, DatabaseID(db), rec.Deleted}
	default:
		return fmt.Errorf("unknown namespace %q", namespace)
	}
	return nil
}

func (st *Store) Close() error {
	return st.backend.Close()
}

// Snapshot returns an immutable view of the current metadata. The read lock
// is held only while the entry maps are cloned.
func (st *Store) Snapshot() *Snapshot {
	st.mu.RLock()
	servers := maps.Clone(st.servers)
	databases := maps.Clone(st.databases)
	tables := maps.Clone(st.tables)
	st.mu.RUnlock()
	return NewSnapshot(servers, databases, tables)
}

// PutServer creates or updates a server entry, clearing any tombstone.
func (st *Store) PutServer(id ServerID, name Name) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	err := st.backend.PutRecord(serversNamespace, id.UUID(), entryRecord{Name: name.Str()})
	if err != nil {
		return err
	}
	st.servers[id] = ServerEntry{Name: name}
	st.logWrite("put server %v %s", id, name.Str())
	return nil
}

// DropServer tombstones a server entry. The entry keeps its name and remains
// in every future snapshot, invisible to lookups.
func (st *Store) DropServer(id ServerID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.servers[id]
	if !ok {
		return notFoundf("There is no server with UUID `%s`.", id)
	}
	err := st.backend.PutRecord(serversNamespace, id.UUID(), entryRecord{Name: e.Name.Str(), Deleted: true})
	if err != nil {
		return err
	}
	e.Deleted = true
	st.servers[id] = e
	st.logWrite("drop server %v", id)
	return nil
}

// PutDatabase creates or updates a database entry, clearing any tombstone.
func (st *Store) PutDatabase(id DatabaseID, name Name) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	err := st.backend.PutRecord(databasesNamespace, id.UUID(), entryRecord{Name: name.Str()})
	if err != nil {
		return err
	}
	st.databases[id] = DatabaseEntry{Name: name}
	st.logWrite("put database %v %s", id, name.Str())
	return nil
}

// DropDatabase tombstones a database entry. Tables owned by it are left
// alone: they resolve with the deleted-database sentinel from then on.
func (st *Store) DropDatabase(id DatabaseID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.databases[id]
	if !ok {
		return notFoundf("There is no database with UUID `%s`.", id)
	}
	err := st.backend.PutRecord(databasesNamespace, id.UUID(), entryRecord{Name: e.Name.Str(), Deleted: true})
	if err != nil {
		return err
	}
	e.Deleted = true
	st.databases[id] = e
	st.logWrite("drop database %v", id)
	return nil
}

// PutTable creates or updates a table entry owned by db, clearing any
// tombstone. The database does not have to be live: table metadata is
// allowed to outlive its parent.
func (st *Store) PutTable(id TableID, name Name, db DatabaseID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	dbid := db.UUID()
	err := st.backend.PutRecord(tablesNamespace, id.UUID(), entryRecord{Name: name.Str(), Database: dbid[:]})
	if err != nil {
		return err
	}
	st.tables[id] = TableEntry{Name: name, Database: db}
	st.logWrite("put table %v %s db=%v", id, name.Str(), db)
	return nil
}

// DropTable tombstones a table entry.
func (st *Store) DropTable(id TableID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.tables[id]
	if !ok {
		return notFoundf("There is no table with UUID `%s`.", id)
	}
	dbid := e.Database.UUID()
	err := st.backend.PutRecord(tablesNamespace, id.UUID(), entryRecord{Name: e.Name.Str(), Database: dbid[:], Deleted: true})
	if err != nil {
		return err
	}
	e.Deleted = true
	st.tables[id] = e
	st.logWrite("drop table %v", id)
	return nil
}

func (st *Store) logWrite(format string, args ...any) {
	if st.verbose && st.logf != nil {
		st.logf("metadb: "+format, args...)
	}
}
