package datum

import "bytes"

// String is a length-prefixed ("Pascal style") immutable string. This has two
// advantages over Go strings for boundary code:
//
//   - it serializes and deserializes without a separate length field, because
//     the backing buffer already carries the varint length prefix;
//   - a String deserialized from a shared buffer keeps pointing into that
//     buffer, so copies never reallocate.
//
// The zero value is the empty string. Copying a String shares the backing
// buffer; only MakeString, MakeStringBytes, AdoptStringBuffer (for fresh
// buffers) and Concat allocate.
//
// Content may contain any byte, including NUL. The view returned by Data is
// not terminated in any way; always use Size.
type String struct {
	buf []byte // varint-encoded content length followed by the content; nil when empty
	off int    // offset of the content within buf
}

// MakeString copies s into a freshly allocated length-prefixed buffer.
func MakeString(s string) String {
	if len(s) == 0 {
		return String{}
	}
	buf := appendUvarint(make([]byte, 0, maxUvarintLen+len(s)), uint64(len(s)))
	off := len(buf)
	return String{append(buf, s...), off}
}

// MakeStringBytes copies b into a freshly allocated length-prefixed buffer.
func MakeStringBytes(b []byte) String {
	if len(b) == 0 {
		return String{}
	}
	buf := appendUvarint(make([]byte, 0, maxUvarintLen+len(b)), uint64(len(b)))
	off := len(buf)
	return String{append(buf, b...), off}
}

// AdoptStringBuffer wraps an existing length-prefixed buffer without copying.
// buf must start with the varint-encoded content length, followed by exactly
// that many content bytes. Ownership of buf becomes shared: the caller must
// not modify it afterwards.
func AdoptStringBuffer(buf []byte) (String, error) {
	size, n, err := readUvarint(buf)
	if err != nil {
		return String{}, dataErrf(buf, 0, nil, "invalid string buffer: bad length prefix")
	}
	if uint64(len(buf)-n) != size {
		return String{}, dataErrf(buf, n, nil, "invalid string buffer: got %d content bytes, length prefix says %d", len(buf)-n, size)
	}
	return String{buf, n}, nil
}

// Size returns the content length in bytes.
func (s String) Size() int {
	return len(s.buf) - s.off
}

// Empty reports whether the content has zero length.
func (s String) Empty() bool {
	return len(s.buf) == s.off
}

// Data returns the content bytes. The returned slice aliases the shared
// backing buffer and must not be modified. It is not NUL-terminated; consume
// exactly Size bytes.
func (s String) Data() []byte {
	return s.buf[s.off:]
}

// Raw returns the full backing buffer: varint length prefix followed by the
// content. This is the wire layout of a string-kind datum. The returned slice
// must not be modified.
func (s String) Raw() []byte {
	if s.buf == nil {
		return []byte{0}
	}
	return s.buf
}

// String converts the content to a regular Go string, copying it.
func (s String) String() string {
	return string(s.Data())
}

// Compare returns -1, 0 or 1 ordering s and other bytewise lexicographically.
// The order depends on content only, never on buffer identity.
func (s String) Compare(other String) int {
	return bytes.Compare(s.Data(), other.Data())
}

// CompareString is a shortcut for comparing against a Go string, with the
// same semantics as Compare.
func (s String) CompareString(other string) int {
	return bytes.Compare(s.Data(), []byte(other))
}

func (s String) Equal(other String) bool {
	return bytes.Equal(s.Data(), other.Data())
}

func (s String) EqualString(other string) bool {
	return string(s.Data()) == other
}

func (s String) Less(other String) bool {
	return s.Compare(other) < 0
}

// Concat returns a new String holding a's content followed by b's content,
// in a freshly allocated buffer with a freshly computed length prefix.
// Neither input is modified.
func Concat(a, b String) String {
	n := a.Size() + b.Size()
	if n == 0 {
		return String{}
	}
	buf := appendUvarint(make([]byte, 0, maxUvarintLen+n), uint64(n))
	off := len(buf)
	buf = append(buf, a.Data()...)
	buf = append(buf, b.Data()...)
	return String{buf, off}
}
