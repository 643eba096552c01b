// Package seen persists the set of article URLs already used in a
// successful run, so repeat runs skip them. Two backends exist behind the
// same interface: a JSON file and an embedded SQLite database.
package seen

// Store is the seen-set contract. Load is called once at startup; Add only
// mutates memory (or the database) and Save flushes — the orchestrator calls
// both only after synthesis succeeded.
type Store interface {
	Load() error
	Contains(url string) bool
	Add(urls ...string) error
	Save() error
	Close() error
}
