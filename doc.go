/*
Package metadb sits at the administrative boundary of a distributed database:
it converts between the untyped datum value format that clients exchange and
the strongly-typed identifiers and configuration fields used internally
(server/database/table ids, names, ports, timestamps).

We implement:

1. Scalar converters between native values and datums (string, restricted-
charset name, UUID, port, microsecond timestamp). Decoders never panic on
client input; they return an *Error with a message describing the expected
shape versus what was found.

2. ObjectDecoder, a strict-schema field extractor over an object datum that
rejects unrecognized fields instead of ignoring them.

3. Identifier resolution between external form (name or UUID, selected per
call by IdentifierFormat) and internal stable ids, against an explicit
read-only metadata Snapshot. Name lookups distinguish "does not exist" from
"is ambiguous"; deleted entries are tombstones that stay in the snapshot but
are invisible to every lookup, with one documented exception for tables whose
owning database was dropped.

4. Store, the metadata store backing the snapshots, persisting entries as
msgpack records in Bolt (or in memory for tests).

# Error model

Every conversion failure is an *Error carrying one of three kinds:
TypeMismatch (datum present but wrong kind or shape), NotFound (field or
identifier absent, or matched only tombstoned entries), Ambiguous (a name
matched several live entries). All failures are reported to the immediate
caller; none terminate the process.

The datum format itself lives in the datum subpackage.
*/
package metadb
