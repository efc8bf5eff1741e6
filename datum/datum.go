package datum

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags a Datum value. The zero Kind is reserved so that the zero Datum
// is recognizable as "no value" (see Datum.Exists).
type Kind int

const (
	KindNull Kind = 1 + iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Datum is a tagged value exchanged at the database's client-facing boundary.
// Datums are value-like and immutable: accessors return views that must not
// be modified, and copying shares the underlying storage.
//
// An object is an ordered sequence of unique (String key, Datum value) pairs
// sorted by key.
type Datum struct {
	kind  Kind
	num   float64
	str   String
	arr   []Datum
	pairs []Pair
}

// Pair is a single key/value entry of an object-kind Datum.
type Pair struct {
	Key   String
	Value Datum
}

// Null returns the null-kind datum.
func Null() Datum {
	return Datum{kind: KindNull}
}

func Bool(v bool) Datum {
	var num float64
	if v {
		num = 1
	}
	return Datum{kind: KindBool, num: num}
}

func Number(v float64) Datum {
	return Datum{kind: KindNumber, num: v}
}

// Str wraps an immutable string as a string-kind datum, sharing its buffer.
func Str(s String) Datum {
	return Datum{kind: KindString, str: s}
}

// StrFrom wraps a Go string, copying it into a fresh buffer.
func StrFrom(s string) Datum {
	return Datum{kind: KindString, str: MakeString(s)}
}

// Array wraps elems as an array-kind datum. elems is adopted, not copied;
// the caller must not modify it afterwards.
func Array(elems ...Datum) Datum {
	return Datum{kind: KindArray, arr: elems}
}

// Object builds an object-kind datum from the given pairs. Pairs are sorted
// by key; duplicate keys are a programming error and panic.
func Object(pairs ...Pair) Datum {
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key.Less(pairs[j].Key)
	})
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Key.Equal(pairs[i-1].Key) {
			panic(fmt.Sprintf("duplicate object key %q", pairs[i].Key.String()))
		}
	}
	return Datum{kind: KindObject, pairs: pairs}
}

// Field is a convenience constructor for object pairs.
func Field(key string, value Datum) Pair {
	return Pair{MakeString(key), value}
}

// Exists reports whether d holds a value at all. The zero Datum does not;
// it is the "missing" marker returned by optional lookups, distinct from an
// explicit null.
func (d Datum) Exists() bool {
	return d.kind != 0
}

func (d Datum) Kind() Kind {
	return d.kind
}

func (d Datum) IsNull() bool {
	return d.kind == KindNull
}

func (d Datum) Bool() bool {
	d.mustBe(KindBool)
	return d.num != 0
}

func (d Datum) Number() float64 {
	d.mustBe(KindNumber)
	return d.num
}

func (d Datum) Str() String {
	d.mustBe(KindString)
	return d.str
}

func (d Datum) ArrLen() int {
	d.mustBe(KindArray)
	return len(d.arr)
}

func (d Datum) Elem(i int) Datum {
	d.mustBe(KindArray)
	return d.arr[i]
}

func (d Datum) ObjLen() int {
	d.mustBe(KindObject)
	return len(d.pairs)
}

// Pair returns the i-th key/value pair of an object datum, in key order.
func (d Datum) Pair(i int) Pair {
	d.mustBe(KindObject)
	return d.pairs[i]
}

// Lookup returns the value stored under key, or a non-existing Datum if the
// object has no such field.
func (d Datum) Lookup(key string) Datum {
	d.mustBe(KindObject)
	n := len(d.pairs)
	i := sort.Search(n, func(i int) bool { return d.pairs[i].Key.CompareString(key) >= 0 })
	if i < n && d.pairs[i].Key.EqualString(key) {
		return d.pairs[i].Value
	}
	return Datum{}
}

func (d Datum) mustBe(kind Kind) {
	if d.kind != kind {
		panic(fmt.Sprintf("datum is %v, not %v", d.kind, kind))
	}
}

// Print renders d for use in error messages. The rendering is deterministic
// and JSON-like; non-printable string content comes out escaped.
func (d Datum) Print() string {
	var buf strings.Builder
	d.print(&buf)
	return buf.String()
}

func (d Datum) print(buf *strings.Builder) {
	switch d.kind {
	case 0:
		buf.WriteString("<missing>")
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if d.num != 0 {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(strconv.FormatFloat(d.num, 'g', -1, 64))
	case KindString:
		buf.WriteString(strconv.Quote(d.str.String()))
	case KindArray:
		buf.WriteByte('[')
		for i, el := range d.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			el.print(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, p := range d.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(p.Key.String()))
			buf.WriteByte(':')
			p.Value.print(buf)
		}
		buf.WriteByte('}')
	default:
		panic(fmt.Sprintf("invalid datum kind %d", int(d.kind)))
	}
}
