package lr

import (
	"database/sql"
	"time"
)

type person struct {
	ID      string
	Name    string
	Email   string
	Born    time.Time
	Entries []*entry
}

type entry struct {
	ID     int
	Title  string
	Starts time.Time
	Done   sql.NullBool
	Owner  *person
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func entities() (*ResourceEntity[*person], *ResourceEntity[*entry]) {
	people := NewResourceEntity[*person]().Named("person")
	entries := NewResourceEntity[*entry]().Named("entry")

	people.
		ID("id", ValueString, func(p *person) any { return p.ID }).
		Attribute("name", ValueString, SQLNone, func(p *person) any { return p.Name }).
		Attribute("email", ValueString, SQLNone, func(p *person) any { return optional(p.Email) }).
		Attribute("born", ValueInstant, SQLDate, func(p *person) any { return p.Born }).
		ToMany("entries", entries, func(p *person) []any { return Objects(p.Entries) })

	entries.
		ID("id", ValueNumeric, func(e *entry) any { return e.ID }).
		Attribute("title", ValueString, SQLNone, func(e *entry) any { return e.Title }).
		Attribute("starts", ValueDateTime, SQLNone, func(e *entry) any { return e.Starts }).
		Attribute("done", ValueBoolean, SQLNone, func(e *entry) any { return e.Done }).
		ToOne("owner", people, func(e *entry) any { return e.Owner })

	return people.MustBuild(), entries.MustBuild()
}

func graph() (*person, *entry) {
	ada := &person{
		ID:   "p1",
		Name: "Ada",
		Born: time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC),
	}
	launch := &entry{
		ID:     1,
		Title:  "Launch",
		Starts: time.UnixMilli(epochMill),
		Done:   sql.NullBool{Bool: true, Valid: true},
		Owner:  ada,
	}
	ada.Entries = []*entry{launch}

	return ada, launch
}

func utcService(filters []EncoderFilter, relationships RelationshipMapper, metadata map[string]PropertyMetadataEncoder, options ...ServiceOption) *EncoderService {
	return NewEncoderService(
		filters,
		NewAttributeEncoderFactory(nil, Location(time.UTC)),
		nil,
		relationships,
		metadata,
		options...,
	)
}
