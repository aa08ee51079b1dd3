package calendar

import (
	"github.com/google/wire"
)

func NewPeopleSource(store *Store) PeopleSource {
	return PeopleSource{Store: store}
}

func NewEntrySource(store *Store) EntrySource {
	return EntrySource{Store: store}
}

// Set provides the HTTP sources over a store.
var Set = wire.NewSet(
	NewPeopleSource,
	NewEntrySource,
)
