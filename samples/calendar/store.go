package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store keeps people and their entries in memory. Objects handed out are
// shared with the store, so it is populated before it is served.
type Store struct {
	lk      sync.RWMutex
	ids     *IDGenerator
	people  []*Person
	entries []*Entry
}

func NewStore(ids *IDGenerator) *Store {
	return &Store{ids: ids}
}

func (s *Store) AddPerson(person *Person) *Person {
	s.lk.Lock()
	defer s.lk.Unlock()

	if person.ID == (ulid.ULID{}) {
		person.ID = s.ids.NewID(time.Now())
	}
	s.people = append(s.people, person)

	return person
}

// AddEntry records entry for owner. Attendees are linked as given.
func (s *Store) AddEntry(owner *Person, entry *Entry) *Entry {
	s.lk.Lock()
	defer s.lk.Unlock()

	if entry.ID == (ulid.ULID{}) {
		entry.ID = s.ids.NewID(entry.Starts)
	}
	entry.Owner = owner
	owner.Entries = append(owner.Entries, entry)
	s.entries = append(s.entries, entry)

	return entry
}

type PeopleSource struct {
	*Store
}

func (s PeopleSource) List(context.Context) ([]*Person, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	return append([]*Person(nil), s.people...), nil
}

func (s PeopleSource) Get(_ context.Context, id string) (*Person, bool, error) {
	key, err := ulid.ParseStrict(id)
	if err != nil {
		return nil, false, nil
	}

	s.lk.RLock()
	defer s.lk.RUnlock()

	for _, person := range s.people {
		if person.ID == key {
			return person, true, nil
		}
	}
	return nil, false, nil
}

type EntrySource struct {
	*Store
}

func (s EntrySource) List(context.Context) ([]*Entry, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	return append([]*Entry(nil), s.entries...), nil
}

func (s EntrySource) Get(_ context.Context, id string) (*Entry, bool, error) {
	key, err := ulid.ParseStrict(id)
	if err != nil {
		return nil, false, nil
	}

	s.lk.RLock()
	defer s.lk.RUnlock()

	for _, entry := range s.entries {
		if entry.ID == key {
			return entry, true, nil
		}
	}
	return nil, false, nil
}
