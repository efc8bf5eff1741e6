/*
Package datum implements the untyped, tree-structured value format exchanged
at a database's client-facing boundary.

A Datum is a tagged value of kind null, bool, number, string, array or
object. Objects are ordered sequences of unique key/value pairs sorted by
key. Datums are value-like and never mutated after construction.

Strings are backed by String, an immutable length-prefixed byte sequence.
The backing buffer stores the content length as a uvarint followed by the raw
content bytes, which is also the wire layout, so strings decoded from a wire
buffer keep sharing it. Because buffers are immutable once constructed, a
String may be copied and shared freely across goroutines.

# Wire encoding

Every datum serializes as a kind tag byte followed by a payload; strings as
uvarint length plus raw bytes, objects as a pair count followed by the pairs
in key order. See encoding.go for the exact layout.
*/
package datum
