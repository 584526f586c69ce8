package scaffold

import (
	"path/filepath"
	"regexp"
	"unicode"
	"unicode/utf8"
)

const (
	sliceSuffix   = "Slice"
	sourceExt     = ".ts"
	componentExt  = ".tsx"
	indexFileName = "index" + sourceExt
)

var (
	namePattern      = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	sliceFilePattern = regexp.MustCompile(`^([A-Za-z_$][A-Za-z0-9_$]*)` + sliceSuffix + `\.ts$`)
)

// Slice identifies one generated state slice.
type Slice struct {
	Name    string
	CapName string
}

// NewSlice derives a Slice from a user-supplied name.
func NewSlice(name string) Slice {
	return Slice{Name: name, CapName: Capitalize(name)}
}

// Component identifies one generated UI component.
type Component struct {
	Name string
}

// ValidateName checks that name can be used as a JavaScript identifier, which
// every generated declaration requires.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return errorf(ErrInvalidName, "%q must match %s", name, namePattern.String())
	}
	return nil
}

// Capitalize upper-cases the first letter and preserves the remainder.
func Capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// SliceFileName maps a slice name to its file name: "cart" → "cartSlice.ts".
func SliceFileName(name string) string {
	return name + sliceSuffix + sourceExt
}

// SliceNameFromFile is the inverse of SliceFileName. It reports false for any
// file that SliceFileName could not have produced.
func SliceNameFromFile(file string) (string, bool) {
	m := sliceFilePattern.FindStringSubmatch(file)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ComponentFileName maps a component name to its file name.
func ComponentFileName(name string) string {
	return name + componentExt
}

// StateDir returns <root>/src/state.
func StateDir(root string) string {
	return filepath.Join(root, "src", "state")
}

// ComponentsDir returns <root>/src/components.
func ComponentsDir(root string) string {
	return filepath.Join(root, "src", "components")
}

// IndexPath returns <root>/src/state/index.ts.
func IndexPath(root string) string {
	return filepath.Join(StateDir(root), indexFileName)
}
