package countryflags

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

//go:embed data/flags/*.svg
var flagAssets embed.FS

//go:embed data/names.txt
var nameData string

// NameTable maps a lowercase country code to its display name.
type NameTable map[string]string

// Lookup returns the display name of code, falling back to the uppercased code.
func (t NameTable) Lookup(code string) string {
	code = normalize(code)
	if name, ok := t[code]; ok && name != "" {
		return name
	}
	return strings.ToUpper(code)
}

// LoadNames parses a name table made up of "code,name" lines.
// Blank lines and lines starting with # are skipped.
func LoadNames(r io.Reader) (NameTable, error) {
	names := make(NameTable)
	scanner := bufio.NewScanner(r)

	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("name table line %d: missing separator: %w", n, ErrInvalidArgument)
		}
		code := normalize(parts[0])
		if code == "" {
			return nil, fmt.Errorf("name table line %d: empty code: %w", n, ErrInvalidArgument)
		}
		names[code] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read the name table: %w", err)
	}
	return names, nil
}

// DefaultNames returns the bundled name table.
func DefaultNames() NameTable {
	names, err := LoadNames(strings.NewReader(nameData))
	if err != nil {
		// The bundled table is checked by the tests.
		panic(err)
	}
	return names
}

// Embedded returns a source serving the bundled flag assets.
func Embedded() *DirSource {
	sub, err := fs.Sub(flagAssets, "data/flags")
	if err != nil {
		panic(err)
	}
	return NewDirSource(sub, ".")
}
