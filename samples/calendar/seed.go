package calendar

import (
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jaswdr/faker"
)

// Seed fills store with people, each owning entries spread over the month
// after start. Every other entry invites the next person.
func Seed(store *Store, f faker.Faker, people int, entries int, start time.Time) {
	added := make([]*Person, 0, people)
	for i := 0; i < people; i++ {
		person := &Person{
			Name:     f.Person().Name(),
			Birthday: pgtype.Date{Time: time.Date(f.IntBetween(1950, 2005), time.Month(f.IntBetween(1, 12)), f.IntBetween(1, 28), 0, 0, 0, 0, time.UTC), Valid: true},
		}
		if i%2 == 0 {
			person.Email = sql.NullString{String: f.Internet().Email(), Valid: true}
		}
		added = append(added, store.AddPerson(person))
	}

	for i, owner := range added {
		for j := 0; j < entries; j++ {
			starts := start.Add(time.Duration(f.IntBetween(0, 30*24)) * time.Hour)
			entry := &Entry{
				Title:    f.Lorem().Sentence(4),
				Starts:   starts,
				Reminder: pgtype.Time{Microseconds: int64(f.IntBetween(6, 20)) * int64(time.Hour/time.Microsecond), Valid: true},
				Minutes:  pgtype.Int4{Int32: int32(f.IntBetween(1, 8) * 15), Valid: true},
				AllDay:   sql.NullBool{Bool: j%3 == 0, Valid: true},
			}
			if j%2 == 1 && len(added) > 1 {
				entry.Attendees = []*Person{added[(i+1)%len(added)]}
			}
			if j%4 == 0 {
				entry.Notes = sql.NullString{String: f.Lorem().Sentence(8), Valid: true}
			}
			store.AddEntry(owner, entry)
		}
	}
}
