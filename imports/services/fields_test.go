package services

import (
	"reflect"
	"testing"
)

func TestStringField(t *testing.T) {
	record := RawRecord{
		"s":   "hello",
		"f":   float64(42),
		"b":   true,
		"nil": nil,
	}

	if got := stringField(record, "s"); got != "hello" {
		t.Errorf("string value = %q", got)
	}
	if got := stringField(record, "f"); got != "42" {
		t.Errorf("float value = %q", got)
	}
	if got := stringField(record, "b"); got != "true" {
		t.Errorf("bool value = %q", got)
	}
	if got := stringField(record, "nil"); got != "" {
		t.Errorf("nil value = %q", got)
	}
	if got := stringField(record, "missing"); got != "" {
		t.Errorf("missing value = %q", got)
	}
}

func TestIntField(t *testing.T) {
	record := RawRecord{
		"json": float64(7),
		"str":  " 12 ",
		"bad":  "many",
	}

	if got := intField(record, "json", 0); got != 7 {
		t.Errorf("json number = %d", got)
	}
	if got := intField(record, "str", 0); got != 12 {
		t.Errorf("string number = %d", got)
	}
	if got := intField(record, "bad", 5); got != 5 {
		t.Errorf("unparseable = %d, want fallback 5", got)
	}
	if got := intField(record, "missing", 9); got != 9 {
		t.Errorf("missing = %d, want fallback 9", got)
	}
}

func TestBoolField(t *testing.T) {
	record := RawRecord{
		"b":   false,
		"str": "true",
		"bad": "yep",
	}

	if got := boolField(record, "b", true); got != false {
		t.Errorf("bool value = %v", got)
	}
	if got := boolField(record, "str", false); got != true {
		t.Errorf("string bool = %v", got)
	}
	if got := boolField(record, "bad", true); got != true {
		t.Errorf("unparseable = %v, want fallback", got)
	}
}

func TestListField(t *testing.T) {
	record := RawRecord{
		"strings": []string{"a", "b"},
		"mixed":   []interface{}{"a", 1},
		"scalar":  "not-a-list",
	}

	if got := listField(record, "strings"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("strings = %v", got)
	}
	if got := listField(record, "mixed"); !reflect.DeepEqual(got, []string{"a", "1"}) {
		t.Errorf("mixed = %v", got)
	}
	if got := listField(record, "scalar"); len(got) != 0 {
		t.Errorf("scalar = %v, want empty", got)
	}
	if got := listField(record, "missing"); len(got) != 0 {
		t.Errorf("missing = %v, want empty", got)
	}
}
