package datum

import (
	"encoding/binary"
	"math"
)

// Wire format: a kind tag byte followed by the payload.
//
//	null   -> (nothing)
//	bool   -> 0x00 | 0x01
//	number -> float bits, big-endian fixed 8 bytes
//	string -> content length (uvarint), content bytes
//	array  -> element count (uvarint), elements
//	object -> pair count (uvarint), then per pair: key as string payload, value
//
// The string payload matches String.Raw exactly, so decoded strings share the
// wire buffer instead of copying out of it, and encoded strings are appended
// directly from their backing buffers.

// AppendDatum appends the wire encoding of d to buf and returns the extended
// buffer. It panics if d does not exist (the zero Datum has no encoding).
func AppendDatum(buf []byte, d Datum) []byte {
	if !d.Exists() {
		panic("cannot encode missing datum")
	}
	buf = append(buf, byte(d.kind))
	switch d.kind {
	case KindNull:
	case KindBool:
		if d.num != 0 {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case KindNumber:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(d.num))
		buf = append(buf, b[:]...)
	case KindString:
		buf = append(buf, d.str.Raw()...)
	case KindArray:
		buf = appendUvarint(buf, uint64(len(d.arr)))
		for _, el := range d.arr {
			buf = AppendDatum(buf, el)
		}
	case KindObject:
		buf = appendUvarint(buf, uint64(len(d.pairs)))
		for _, p := range d.pairs {
			buf = append(buf, p.Key.Raw()...)
			buf = AppendDatum(buf, p.Value)
		}
	}
	return buf
}

// Encode returns the wire encoding of d in a fresh buffer.
func Encode(d Datum) []byte {
	return AppendDatum(nil, d)
}

// Decode decodes a single datum occupying all of buf. Decoded strings share
// buf; the caller must not modify it afterwards.
func Decode(buf []byte) (Datum, error) {
	d := makeByteDecoder(buf)
	v, err := decodeDatum(&d)
	if err != nil {
		return Datum{}, err
	}
	if !d.Empty() {
		return Datum{}, dataErrf(d.Orig, d.Off(), nil, "trailing garbage after datum")
	}
	return v, nil
}

func decodeDatum(d *byteDecoder) (Datum, error) {
	tag, err := d.Byte()
	if err != nil {
		return Datum{}, err
	}
	switch Kind(tag) {
	case KindNull:
		return Null(), nil
	case KindBool:
		b, err := d.Byte()
		if err != nil {
			return Datum{}, err
		}
		switch b {
		case 0:
			return Bool(false), nil
		case 1:
			return Bool(true), nil
		default:
			return Datum{}, dataErrf(d.Orig, d.Off()-1, nil, "invalid bool byte %d", b)
		}
	case KindNumber:
		bits, err := d.FixedUint64()
		if err != nil {
			return Datum{}, err
		}
		return Number(math.Float64frombits(bits)), nil
	case KindString:
		s, err := d.VarString()
		if err != nil {
			return Datum{}, err
		}
		return Str(s), nil
	case KindArray:
		n, err := d.Uvarinti()
		if err != nil {
			return Datum{}, err
		}
		if n > len(d.Buf) {
			return Datum{}, dataErrf(d.Orig, d.Off(), nil, "array count %d exceeds remaining data", n)
		}
		elems := make([]Datum, 0, n)
		for i := 0; i < n; i++ {
			el, err := decodeDatum(d)
			if err != nil {
				return Datum{}, err
			}
			elems = append(elems, el)
		}
		return Array(elems...), nil
	case KindObject:
		n, err := d.Uvarinti()
		if err != nil {
			return Datum{}, err
		}
		if n > len(d.Buf) {
			return Datum{}, dataErrf(d.Orig, d.Off(), nil, "pair count %d exceeds remaining data", n)
		}
		var prev String
		pairs := make([]Pair, 0, n)
		for i := 0; i < n; i++ {
			key, err := d.VarString()
			if err != nil {
				return Datum{}, err
			}
			if i > 0 {
				if c := prev.Compare(key); c == 0 {
					return Datum{}, dataErrf(d.Orig, d.Off(), nil, "duplicate object key %q", key.String())
				} else if c > 0 {
					return Datum{}, dataErrf(d.Orig, d.Off(), nil, "object keys out of order at %q", key.String())
				}
			}
			val, err := decodeDatum(d)
			if err != nil {
				return Datum{}, err
			}
			pairs = append(pairs, Pair{key, val})
			prev = key
		}
		return Datum{kind: KindObject, pairs: pairs}, nil
	default:
		return Datum{}, dataErrf(d.Orig, d.Off()-1, nil, "invalid datum kind tag %d", tag)
	}
}
