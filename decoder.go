package metadb

import (
	"sort"
	"strings"

	"github.com/andreyvit/metadb/datum"
)

// ObjectDecoder extracts typed fields out of an object-kind datum while
// enforcing a closed schema: every key the caller does not consume via Get
// or GetOptional is reported by CheckNoExtraKeys, so unrecognized
// client-supplied fields are rejected instead of silently ignored.
//
// Intended call order: NewObjectDecoder, then Get/GetOptional/Has per
// expected field, then CheckNoExtraKeys.
type ObjectDecoder struct {
	datum  datum.Datum
	unseen map[string]struct{}
}

// NewObjectDecoder fails with a type mismatch unless d is an object.
func NewObjectDecoder(d datum.Datum) (*ObjectDecoder, error) {
	if d.Kind() != datum.KindObject {
		return nil, typeMismatchf("Expected an object; got %s", d.Print())
	}
	unseen := make(map[string]struct{}, d.ObjLen())
	for i := 0; i < d.ObjLen(); i++ {
		unseen[d.Pair(i).Key.String()] = struct{}{}
	}
	return &ObjectDecoder{d, unseen}, nil
}

// Get consumes key (whether present or not) and returns its value, failing
// if the field is absent.
func (dec *ObjectDecoder) Get(key string) (datum.Datum, error) {
	delete(dec.unseen, key)
	value := dec.datum.Lookup(key)
	if !value.Exists() {
		return datum.Datum{}, notFoundf("Expected a field named `%s`.", key)
	}
	return value, nil
}

// GetOptional consumes key like Get but never fails: a missing field yields
// a non-existing Datum, distinguishable from a present explicit null.
func (dec *ObjectDecoder) GetOptional(key string) datum.Datum {
	delete(dec.unseen, key)
	return dec.datum.Lookup(key)
}

// Has reports presence without consuming the key. A key peeked at with Has
// still counts as unconsumed for CheckNoExtraKeys.
func (dec *ObjectDecoder) Has(key string) bool {
	return dec.datum.Lookup(key).Exists()
}

// CheckNoExtraKeys fails if any key was never consumed, listing every such
// key in one message.
func (dec *ObjectDecoder) CheckNoExtraKeys() error {
	if len(dec.unseen) == 0 {
		return nil
	}
	keys := make([]string, 0, len(dec.unseen))
	for key := range dec.unseen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return typeMismatchf("Unexpected key(s): %s", strings.Join(keys, " "))
}
