package metadb

import (
	"testing"

	"github.com/google/uuid"

	"github.com/andreyvit/metadb/datum"
)

var (
	testServerA  = ServerID(uuid.MustParse("11111111-1111-4111-8111-111111111111"))
	testServerB  = ServerID(uuid.MustParse("22222222-2222-4222-8222-222222222222"))
	testServerB2 = ServerID(uuid.MustParse("33333333-3333-4333-8333-333333333333"))
	testServerX  = ServerID(uuid.MustParse("44444444-4444-4444-8444-444444444444"))
	testDB       = DatabaseID(uuid.MustParse("55555555-5555-4555-8555-555555555555"))
	testDeadDB   = DatabaseID(uuid.MustParse("66666666-6666-4666-8666-666666666666"))
	testTable    = TableID(uuid.MustParse("77777777-7777-4777-8777-777777777777"))
	testOrphan   = TableID(uuid.MustParse("88888888-8888-4888-8888-888888888888"))
	testDead     = TableID(uuid.MustParse("99999999-9999-4999-8999-999999999999"))
)

// testSnapshot: alpha is unique; beta exists twice (ambiguous); gone is
// tombstoned. prod holds users; legacy is a tombstoned database still owning
// orphan. old is a tombstoned table.
func testSnapshot() *Snapshot {
	return NewSnapshot(
		map[ServerID]ServerEntry{
			testServerA:  {Name: MustName("alpha")},
			testServerB:  {Name: MustName("beta")},
			testServerB2: {Name: MustName("beta")},
			testServerX:  {Name: MustName("gone"), Deleted: true},
		},
		map[DatabaseID]DatabaseEntry{
			testDB:     {Name: MustName("prod")},
			testDeadDB: {Name: MustName("legacy"), Deleted: true},
		},
		map[TableID]TableEntry{
			testTable:  {Name: MustName("users"), Database: testDB},
			testOrphan: {Name: MustName("orphan"), Database: testDeadDB},
			testDead:   {Name: MustName("old"), Database: testDB, Deleted: true},
		},
	)
}

func TestServerID_EncodeDecodeRoundTrip(t *testing.T) {
	snap := testSnapshot()
	for _, format := range []IdentifierFormat{FormatName, FormatUUID} {
		d, name, ok := ServerIDToDatum(testServerA, format, snap)
		if !ok || name != MustName("alpha") {
			t.Fatalf("ServerIDToDatum(alpha, %v) = ok=%v name=%q", format, ok, name.Str())
		}
		id, name, err := ServerIDFromDatum(d, format, snap)
		if err != nil || id != testServerA || name != MustName("alpha") {
			t.Fatalf("decode(encode(alpha, %v)) = (%v, %q, %v)", format, id, name.Str(), err)
		}
	}
}

func TestServerID_EncodeFormats(t *testing.T) {
	snap := testSnapshot()
	d, _, _ := ServerIDToDatum(testServerA, FormatName, snap)
	if got := d.Print(); got != `"alpha"` {
		t.Fatalf("name format = %s", got)
	}
	d, _, _ = ServerIDToDatum(testServerA, FormatUUID, snap)
	if got := d.Print(); got != `"11111111-1111-4111-8111-111111111111"` {
		t.Fatalf("uuid format = %s", got)
	}
}

func TestServerID_EncodeTombstonedFails(t *testing.T) {
	if _, _, ok := ServerIDToDatum(testServerX, FormatName, testSnapshot()); ok {
		t.Fatalf("encoding a tombstoned server succeeded")
	}
}

func TestServerID_DecodeByName(t *testing.T) {
	snap := testSnapshot()

	t.Run("unique", func(t *testing.T) {
		id, name, err := ServerIDFromDatum(datum.StrFrom("alpha"), FormatName, snap)
		if err != nil || id != testServerA || name != MustName("alpha") {
			t.Fatalf("= (%v, %q, %v)", id, name.Str(), err)
		}
	})
	t.Run("not found", func(t *testing.T) {
		_, _, err := ServerIDFromDatum(datum.StrFrom("nosuch"), FormatName, snap)
		if KindOf(err) != NotFound {
			t.Fatalf("err = %v, wanted NotFound", err)
		}
		if got := err.Error(); got != "Server `nosuch` does not exist." {
			t.Fatalf("err message = %q", got)
		}
	})
	t.Run("tombstoned counts as not found", func(t *testing.T) {
		_, _, err := ServerIDFromDatum(datum.StrFrom("gone"), FormatName, snap)
		if KindOf(err) != NotFound {
			t.Fatalf("err = %v, wanted NotFound", err)
		}
	})
	t.Run("ambiguous", func(t *testing.T) {
		_, _, err := ServerIDFromDatum(datum.StrFrom("beta"), FormatName, snap)
		if KindOf(err) != Ambiguous {
			t.Fatalf("err = %v, wanted Ambiguous", err)
		}
		want := "Server `beta` is ambiguous; there are multiple servers with that name."
		if got := err.Error(); got != want {
			t.Fatalf("err message = %q, wanted %q", got, want)
		}
	})
	t.Run("invalid name", func(t *testing.T) {
		_, _, err := ServerIDFromDatum(datum.StrFrom("no spaces!"), FormatName, snap)
		if KindOf(err) != TypeMismatch {
			t.Fatalf("err = %v, wanted TypeMismatch", err)
		}
	})
}

func TestServerID_DecodeByUUID(t *testing.T) {
	snap := testSnapshot()

	t.Run("malformed", func(t *testing.T) {
		_, _, err := ServerIDFromDatum(datum.StrFrom("xyz"), FormatUUID, snap)
		if KindOf(err) != TypeMismatch {
			t.Fatalf("err = %v, wanted TypeMismatch", err)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		_, _, err := ServerIDFromDatum(datum.StrFrom("00000000-0000-4000-8000-000000000000"), FormatUUID, snap)
		if KindOf(err) != NotFound {
			t.Fatalf("err = %v, wanted NotFound", err)
		}
		want := "There is no server with UUID `00000000-0000-4000-8000-000000000000`."
		if got := err.Error(); got != want {
			t.Fatalf("err message = %q, wanted %q", got, want)
		}
	})
	t.Run("tombstoned", func(t *testing.T) {
		_, _, err := ServerIDFromDatum(datum.StrFrom(testServerX.String()), FormatUUID, snap)
		if KindOf(err) != NotFound {
			t.Fatalf("err = %v, wanted NotFound", err)
		}
	})
}

func TestDatabaseID_EncodeDecodeRoundTrip(t *testing.T) {
	snap := testSnapshot()
	for _, format := range []IdentifierFormat{FormatName, FormatUUID} {
		d, name, ok := DatabaseIDToDatum(testDB, format, snap)
		if !ok || name != MustName("prod") {
			t.Fatalf("DatabaseIDToDatum(prod, %v) = ok=%v name=%q", format, ok, name.Str())
		}
		id, name, err := DatabaseIDFromDatum(d, format, snap)
		if err != nil || id != testDB || name != MustName("prod") {
			t.Fatalf("decode(encode(prod, %v)) = (%v, %q, %v)", format, id, name.Str(), err)
		}
	}
}

func TestDatabaseID_EncodeTombstonedFails(t *testing.T) {
	if _, _, ok := DatabaseIDToDatum(testDeadDB, FormatName, testSnapshot()); ok {
		t.Fatalf("encoding a tombstoned database succeeded")
	}
}

func TestDatabaseID_EncodeUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	DatabaseIDToDatum(DatabaseID(uuid.MustParse("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa")), FormatName, testSnapshot())
}

func TestDatabaseID_DecodeErrors(t *testing.T) {
	snap := testSnapshot()

	_, _, err := DatabaseIDFromDatum(datum.StrFrom("nosuch"), FormatName, snap)
	if KindOf(err) != NotFound || err.Error() != "Database `nosuch` does not exist." {
		t.Fatalf("name err = %v", err)
	}

	_, _, err = DatabaseIDFromDatum(datum.StrFrom(testDeadDB.String()), FormatUUID, snap)
	want := "There is no database with UUID `66666666-6666-4666-8666-666666666666`."
	if KindOf(err) != NotFound || err.Error() != want {
		t.Fatalf("uuid err = %v, wanted %q", err, want)
	}
}

func TestTableID_ToDatums(t *testing.T) {
	snap := testSnapshot()

	identity, ok := TableIDToDatums(testTable, FormatName, snap)
	if !ok {
		t.Fatalf("TableIDToDatums(users) failed")
	}
	if identity.TableName != MustName("users") || identity.DatabaseName != MustName("prod") {
		t.Fatalf("identity = %q in %q", identity.TableName.Str(), identity.DatabaseName.Str())
	}
	if got := identity.Table.Print(); got != `"users"` {
		t.Fatalf("table datum = %s", got)
	}
	if got := identity.Database.Print(); got != `"prod"` {
		t.Fatalf("database datum = %s", got)
	}

	t.Run("uuid format", func(t *testing.T) {
		identity, ok := TableIDToDatums(testTable, FormatUUID, snap)
		if !ok || identity.Table.Print() != `"77777777-7777-4777-8777-777777777777"` {
			t.Fatalf("table datum = %s", identity.Table.Print())
		}
		if got := identity.Database.Print(); got != `"55555555-5555-4555-8555-555555555555"` {
			t.Fatalf("database datum = %s", got)
		}
	})

	t.Run("tombstoned table", func(t *testing.T) {
		if _, ok := TableIDToDatums(testDead, FormatName, snap); ok {
			t.Fatalf("resolving a tombstoned table succeeded")
		}
	})
}

func TestTableID_DeletedDatabaseSentinel(t *testing.T) {
	snap := testSnapshot()
	identity, ok := TableIDToDatums(testOrphan, FormatName, snap)
	if !ok {
		t.Fatalf("table with tombstoned database failed to resolve")
	}
	if identity.TableName != MustName("orphan") {
		t.Fatalf("table name = %q", identity.TableName.Str())
	}
	if identity.DatabaseName != DeletedDatabaseName {
		t.Fatalf("database name = %q, wanted %q", identity.DatabaseName.Str(), DeletedDatabaseName.Str())
	}
	if got := identity.Database.Print(); got != `"__deleted_database__"` {
		t.Fatalf("database datum = %s", got)
	}

	// The UUID of the dead database still renders in uuid format.
	identity, ok = TableIDToDatums(testOrphan, FormatUUID, snap)
	if !ok || identity.Database.Print() != `"66666666-6666-4666-8666-666666666666"` {
		t.Fatalf("uuid-format database datum = %s", identity.Database.Print())
	}
}

func TestTableID_FromDatum(t *testing.T) {
	snap := testSnapshot()

	t.Run("by name within database", func(t *testing.T) {
		id, name, err := TableIDFromDatum(datum.StrFrom("users"), FormatName, testDB, snap)
		if err != nil || id != testTable || name != MustName("users") {
			t.Fatalf("= (%v, %q, %v)", id, name.Str(), err)
		}
	})
	t.Run("name scoped to other database", func(t *testing.T) {
		_, _, err := TableIDFromDatum(datum.StrFrom("users"), FormatName, testDeadDB, snap)
		if KindOf(err) != NotFound {
			t.Fatalf("err = %v, wanted NotFound", err)
		}
	})
	t.Run("tombstoned by name", func(t *testing.T) {
		_, _, err := TableIDFromDatum(datum.StrFrom("old"), FormatName, testDB, snap)
		if KindOf(err) != NotFound || err.Error() != "Table `old` does not exist." {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("by uuid", func(t *testing.T) {
		id, name, err := TableIDFromDatum(datum.StrFrom(testTable.String()), FormatUUID, DatabaseID{}, snap)
		if err != nil || id != testTable || name != MustName("users") {
			t.Fatalf("= (%v, %q, %v)", id, name.Str(), err)
		}
	})
	t.Run("tombstoned by uuid", func(t *testing.T) {
		_, _, err := TableIDFromDatum(datum.StrFrom(testDead.String()), FormatUUID, DatabaseID{}, snap)
		if KindOf(err) != NotFound {
			t.Fatalf("err = %v, wanted NotFound", err)
		}
	})
}

func TestSnapshot_FindAmbiguity(t *testing.T) {
	snap := testSnapshot()
	if _, status := snap.FindServer(MustName("beta")); status != SearchMultiple {
		t.Fatalf("FindServer(beta) status = %v, wanted SearchMultiple", status)
	}
	if _, status := snap.FindServer(MustName("gone")); status != SearchNone {
		t.Fatalf("FindServer(gone) status = %v, wanted SearchNone", status)
	}
	if id, status := snap.FindServer(MustName("alpha")); status != SearchUnique || id != testServerA {
		t.Fatalf("FindServer(alpha) = (%v, %v)", id, status)
	}
}
