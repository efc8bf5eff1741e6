package metadb

// Name is a string restricted to a fixed character set, suitable for naming
// servers, databases and tables. The zero value is the empty (invalid) name;
// any non-zero Name has passed validation in MakeName.
type Name struct {
	str string
}

// validNameMsg completes error messages of the form "`x` is not a valid
// table name; " and therefore starts lowercase.
const validNameMsg = "use A-Za-z0-9_ only"

// MakeName validates s against the name character-set rule: names are
// non-empty and consist of ASCII letters, digits and underscores only.
func MakeName(s string) (Name, bool) {
	if len(s) == 0 {
		return Name{}, false
	}
	for i := 0; i < len(s); i++ {
		if !isValidNameChar(s[i]) {
			return Name{}, false
		}
	}
	return Name{s}, true
}

// MustName is for compile-time-known names; it panics on invalid input.
func MustName(s string) Name {
	n, ok := MakeName(s)
	if !ok {
		panic("invalid name: " + s)
	}
	return n
}

func isValidNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func (n Name) Str() string {
	return n.str
}

func (n Name) Empty() bool {
	return n.str == ""
}
