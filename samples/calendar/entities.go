package calendar

import (
	"github.com/weegigs/link-rest-go/lr"
)

var People, Entries = entities()

func entities() (*lr.ResourceEntity[*Person], *lr.ResourceEntity[*Entry]) {
	people := lr.NewResourceEntity[*Person]()
	entries := lr.NewResourceEntity[*Entry]()

	people.
		ID("id", lr.ValueOther, func(p *Person) any { return p.ID }).
		Attribute("name", lr.ValueString, lr.SQLNone, func(p *Person) any { return p.Name }).
		Attribute("email", lr.ValueString, lr.SQLNone, func(p *Person) any { return p.Email }).
		Attribute("birthday", lr.ValueDate, lr.SQLNone, func(p *Person) any { return p.Birthday }).
		ToMany("entries", entries, func(p *Person) []any { return lr.Objects(p.Entries) })

	entries.
		ID("id", lr.ValueOther, func(e *Entry) any { return e.ID }).
		Attribute("title", lr.ValueString, lr.SQLNone, func(e *Entry) any { return e.Title }).
		Attribute("day", lr.ValueInstant, lr.SQLDate, func(e *Entry) any { return e.Starts }).
		Attribute("starts", lr.ValueInstant, lr.SQLTimestamp, func(e *Entry) any { return e.Starts }).
		Attribute("reminder", lr.ValueTime, lr.SQLNone, func(e *Entry) any { return e.Reminder }).
		Attribute("minutes", lr.ValueNumeric, lr.SQLNone, func(e *Entry) any { return e.Minutes }).
		Attribute("allDay", lr.ValueBoolean, lr.SQLNone, func(e *Entry) any { return e.AllDay }).
		Attribute("notes", lr.ValueString, lr.SQLNone, func(e *Entry) any { return e.Notes }).
		ToOne("owner", people, func(e *Entry) any { return e.Owner }).
		ToMany("attendees", people, func(e *Entry) []any { return lr.Objects(e.Attendees) })

	return people.MustBuild(), entries.MustBuild()
}
