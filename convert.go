package metadb

import (
	"github.com/google/uuid"

	"github.com/andreyvit/metadb/datum"
)

// Scalar converters between native values and datums. Encoders are pure and
// always succeed (the native value is assumed already valid); decoders return
// a *Error whose message states the expected shape versus the datum actually
// found. Nothing here panics on client-supplied input.

func StringToDatum(value string) datum.Datum {
	return datum.StrFrom(value)
}

func StringFromDatum(d datum.Datum) (string, error) {
	if d.Kind() != datum.KindString {
		return "", typeMismatchf("Expected a string; got %s", d.Print())
	}
	return d.Str().String(), nil
}

func NameToDatum(value Name) datum.Datum {
	return datum.StrFrom(value.Str())
}

// NameFromDatum decodes a restricted-charset name. what names the field for
// error messages, e.g. "server name" or "table name".
func NameFromDatum(d datum.Datum, what string) (Name, error) {
	if d.Kind() != datum.KindString {
		return Name{}, typeMismatchf("Expected a %s; got %s", what, d.Print())
	}
	name, ok := MakeName(d.Str().String())
	if !ok {
		return Name{}, typeMismatchf("%s is not a valid %s; %s", d.Print(), what, validNameMsg)
	}
	return name, nil
}

func UUIDToDatum(value uuid.UUID) datum.Datum {
	return datum.StrFrom(value.String())
}

func UUIDFromDatum(d datum.Datum) (uuid.UUID, error) {
	if d.Kind() != datum.KindString {
		return uuid.UUID{}, typeMismatchf("Expected a UUID; got %s", d.Print())
	}
	value, err := uuid.Parse(d.Str().String())
	if err != nil {
		return uuid.UUID{}, typeMismatchf("Expected a UUID; got %s", d.Print())
	}
	return value, nil
}

func PortToDatum(value uint16) datum.Datum {
	return datum.Number(float64(value))
}

// MicrotimeToDatum renders a microsecond timestamp as the tagged time object
// carrying epoch seconds and a fixed UTC offset.
func MicrotimeToDatum(usec uint64) datum.Datum {
	return makeTime(float64(usec)/1e6, "+00:00")
}

func makeTime(epochSeconds float64, timezone string) datum.Datum {
	return datum.Object(
		datum.Field("$reql_type$", datum.StrFrom("TIME")),
		datum.Field("epoch_time", datum.Number(epochSeconds)),
		datum.Field("timezone", datum.StrFrom(timezone)),
	)
}
