package metadb

import "testing"

func TestMakeName(t *testing.T) {
	valid := []string{"a", "A", "foo_bar", "Table42", "_", "__deleted_database__"}
	for _, s := range valid {
		n, ok := MakeName(s)
		if !ok || n.Str() != s {
			t.Errorf("MakeName(%q) = (%q, %v), wanted valid", s, n.Str(), ok)
		}
	}

	invalid := []string{"", "foo-bar", "foo bar", "foo.bar", "ütf", "a\x00b", "%"}
	for _, s := range invalid {
		if _, ok := MakeName(s); ok {
			t.Errorf("MakeName(%q) accepted, wanted rejection", s)
		}
	}
}

func TestMustName_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustName("not valid!")
}
