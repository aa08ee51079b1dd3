package temporal

import (
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pkg/errors"
)

type Kind int

const (
	Date Kind = iota
	Time
	DateTime
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02T15:04:05"

	// MilliFraction is appended to a layout when the millisecond of second is non zero.
	MilliFraction = ".000"
)

var (
	ErrUnsupported = errors.New("unsupported temporal representation")
	ErrInfinite    = errors.New("infinite temporal value")
)

func (k Kind) layout() string {
	switch k {
	case Date:
		return DateLayout
	case Time:
		return TimeLayout
	default:
		return DateTimeLayout
	}
}

// Layout returns the layout used to render t as kind.
func Layout(kind Kind, t time.Time) string {
	layout := kind.layout()
	if kind != Date && Millisecond(t) != 0 {
		layout += MilliFraction
	}

	return layout
}

// Millisecond returns the millisecond of second of t. Sub-millisecond precision is truncated.
func Millisecond(t time.Time) int {
	return t.Nanosecond() / int(time.Millisecond)
}

func Format(kind Kind, t time.Time) string {
	return t.Format(Layout(kind, t))
}

// Parse reads a value produced by Format. The fractional suffix is optional.
func Parse(kind Kind, value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(kind.layout(), value, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse %q", value)
	}

	return t, nil
}

// ToLocal converts a temporal value into a time in loc. Instant representations
// are moved into the zone, wall clock representations keep their wall clock.
// present is false when the value carries no time (nil, invalid sql or pg values).
func ToLocal(value any, loc *time.Location) (t time.Time, present bool, err error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return v.In(loc), true, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, false, nil
		}
		return v.In(loc), true, nil
	case sql.NullTime:
		return nullTime(v, loc)
	case *sql.NullTime:
		if v == nil {
			return time.Time{}, false, nil
		}
		return nullTime(*v, loc)
	case pgtype.Timestamptz:
		return timestamptz(v, loc)
	case *pgtype.Timestamptz:
		if v == nil {
			return time.Time{}, false, nil
		}
		return timestamptz(*v, loc)
	case pgtype.Timestamp:
		return timestamp(v, loc)
	case *pgtype.Timestamp:
		if v == nil {
			return time.Time{}, false, nil
		}
		return timestamp(*v, loc)
	case pgtype.Date:
		return date(v, loc)
	case *pgtype.Date:
		if v == nil {
			return time.Time{}, false, nil
		}
		return date(*v, loc)
	case pgtype.Time:
		return timeOfDay(v, loc)
	case *pgtype.Time:
		if v == nil {
			return time.Time{}, false, nil
		}
		return timeOfDay(*v, loc)
	default:
		return time.Time{}, false, errors.Wrapf(ErrUnsupported, "%T", value)
	}
}

func nullTime(v sql.NullTime, loc *time.Location) (time.Time, bool, error) {
	if !v.Valid {
		return time.Time{}, false, nil
	}

	return v.Time.In(loc), true, nil
}

func timestamptz(v pgtype.Timestamptz, loc *time.Location) (time.Time, bool, error) {
	if !v.Valid {
		return time.Time{}, false, nil
	}
	if v.InfinityModifier != pgtype.Finite {
		return time.Time{}, false, errors.Wrap(ErrInfinite, "timestamptz")
	}

	return v.Time.In(loc), true, nil
}

func timestamp(v pgtype.Timestamp, loc *time.Location) (time.Time, bool, error) {
	if !v.Valid {
		return time.Time{}, false, nil
	}
	if v.InfinityModifier != pgtype.Finite {
		return time.Time{}, false, errors.Wrap(ErrInfinite, "timestamp")
	}

	return wall(v.Time, loc), true, nil
}

func date(v pgtype.Date, loc *time.Location) (time.Time, bool, error) {
	if !v.Valid {
		return time.Time{}, false, nil
	}
	if v.InfinityModifier != pgtype.Finite {
		return time.Time{}, false, errors.Wrap(ErrInfinite, "date")
	}

	y, m, d := v.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), true, nil
}

// pgtype.Time has no date; it is placed on 1970-01-01.
func timeOfDay(v pgtype.Time, loc *time.Location) (time.Time, bool, error) {
	if !v.Valid {
		return time.Time{}, false, nil
	}

	us := v.Microseconds
	hour := us / int64(time.Hour/time.Microsecond)
	us -= hour * int64(time.Hour/time.Microsecond)
	minute := us / int64(time.Minute/time.Microsecond)
	us -= minute * int64(time.Minute/time.Microsecond)
	second := us / int64(time.Second/time.Microsecond)
	us -= second * int64(time.Second/time.Microsecond)

	return time.Date(1970, time.January, 1, int(hour), int(minute), int(second), int(us)*int(time.Microsecond), loc), true, nil
}

func wall(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
