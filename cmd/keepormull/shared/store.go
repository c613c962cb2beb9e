package shared

import (
	"fmt"

	"github.com/lox/keepormull/internal/store"
)

// StoreFlags selects a datastore backend on commands that work directly
// against stored decks and decisions.
type StoreFlags struct {
	Store     string `kong:"default='json',enum='memory,json,sqlite',help='Datastore backend (memory, json, sqlite)'"`
	StorePath string `kong:"default='data',help='Directory for the json backend or file path for sqlite'"`
}

// Open builds the selected store. The caller owns Close.
func (f *StoreFlags) Open() (store.Store, error) {
	switch f.Store {
	case "memory":
		return store.NewMemoryStore(), nil
	case "json":
		return store.NewJSONStore(f.StorePath)
	case "sqlite":
		path := f.StorePath
		if path == "data" {
			path = "data/keepormull.db"
		}
		return store.OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", f.Store)
	}
}

// OpenBackend builds a store from explicit backend and path values, used by
// the server which reads them from its config file.
func OpenBackend(backend, path string) (store.Store, error) {
	flags := StoreFlags{Store: backend, StorePath: path}
	return flags.Open()
}
