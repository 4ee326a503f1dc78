package dialect

import (
	"sort"
	"strings"
	"sync"
)

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect)
)

// The built-in dialects. SQLite is the default family: it is what the
// execution check prepares against.
var (
	// SQLite formats booleans as 1/0 and leaves identifiers unquoted.
	SQLite = &Dialect{
		Name:      "sqlite",
		BoolTrue:  "1",
		BoolFalse: "0",
	}

	// Standard uses TRUE/FALSE boolean tokens, otherwise identical.
	Standard = &Dialect{
		Name:      "standard",
		BoolTrue:  "TRUE",
		BoolFalse: "FALSE",
	}
)

func init() {
	Register(SQLite)
	Register(Standard)
}

// Default returns the dialect the package-level renderer uses.
func Default() *Dialect { return SQLite }

// Register adds a dialect to the registry, replacing any dialect of the
// same name.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = d
}

// Get returns a dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// List returns all registered dialect names, sorted.
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
