package calendar

import (
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
)

type Person struct {
	ID       ulid.ULID
	Name     string
	Email    sql.NullString
	Birthday pgtype.Date
	Entries  []*Entry
}

type Entry struct {
	ID        ulid.ULID
	Title     string
	Starts    time.Time
	Reminder  pgtype.Time
	Minutes   pgtype.Int4
	AllDay    sql.NullBool
	Notes     sql.NullString
	Owner     *Person
	Attendees []*Person
}

func (*Person) ResourceName() string {
	return "person"
}

func (*Entry) ResourceName() string {
	return "entry"
}
