package temporal

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epochMillis = 1458995247000

func TestFormatsWithoutFraction(t *testing.T) {
	instant := time.UnixMilli(epochMillis).UTC()

	assert.Equal(t, "2016-03-26", Format(Date, instant))
	assert.Equal(t, "12:27:27", Format(Time, instant))
	assert.Equal(t, "2016-03-26T12:27:27", Format(DateTime, instant))
}

func TestFormatsMillisecondFraction(t *testing.T) {
	instant := time.UnixMilli(epochMillis + 1).UTC()

	assert.Equal(t, "2016-03-26", Format(Date, instant))
	assert.Equal(t, "12:27:27.001", Format(Time, instant))
	assert.Equal(t, "2016-03-26T12:27:27.001", Format(DateTime, instant))
}

func TestIgnoresSubMillisecondPrecision(t *testing.T) {
	instant := time.UnixMilli(epochMillis).UTC().Add(999 * time.Microsecond)

	assert.Equal(t, "2016-03-26T12:27:27", Format(DateTime, instant))
}

func TestConvertsInstantsIntoZone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	instant := time.UnixMilli(epochMillis)

	values := []any{
		instant,
		&instant,
		sql.NullTime{Time: instant, Valid: true},
		pgtype.Timestamptz{Time: instant, Valid: true},
	}

	for _, value := range values {
		local, present, err := ToLocal(value, loc)
		require.NoError(t, err)
		assert.True(t, present)
		assert.Equal(t, "2016-03-26T14:27:27", Format(DateTime, local), "%T", value)
	}
}

func TestKeepsWallClockRepresentations(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	wallClock := time.Date(2016, time.March, 26, 12, 27, 27, 0, time.UTC)

	local, present, err := ToLocal(pgtype.Timestamp{Time: wallClock, Valid: true}, loc)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "2016-03-26T12:27:27", Format(DateTime, local))

	local, _, err = ToLocal(pgtype.Date{Time: wallClock, Valid: true}, loc)
	require.NoError(t, err)
	assert.Equal(t, "2016-03-26T00:00:00", Format(DateTime, local))

	micros := int64((12*time.Hour + 27*time.Minute + 27*time.Second + 1*time.Millisecond) / time.Microsecond)
	local, _, err = ToLocal(pgtype.Time{Microseconds: micros, Valid: true}, loc)
	require.NoError(t, err)
	assert.Equal(t, "12:27:27.001", Format(Time, local))
}

func TestReportsAbsentValues(t *testing.T) {
	var missing *time.Time

	for _, value := range []any{nil, missing, sql.NullTime{}, pgtype.Date{}, pgtype.Time{}, pgtype.Timestamp{}, pgtype.Timestamptz{}} {
		_, present, err := ToLocal(value, time.UTC)
		require.NoError(t, err)
		assert.False(t, present, "%T", value)
	}
}

func TestRejectsUnsupportedValues(t *testing.T) {
	_, _, err := ToLocal("2016-03-26", time.UTC)
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, _, err = ToLocal(int64(epochMillis), time.UTC)
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, _, err = ToLocal(pgtype.Date{InfinityModifier: pgtype.Infinity, Valid: true}, time.UTC)
	assert.True(t, errors.Is(err, ErrInfinite))
}

func TestParsesFormattedValues(t *testing.T) {
	instant := time.UnixMilli(epochMillis + 1).UTC()

	parsed, err := Parse(DateTime, Format(DateTime, instant), time.UTC)
	require.NoError(t, err)
	assert.True(t, instant.Equal(parsed))

	parsed, err = Parse(Date, "2016-03-26", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.March, 26, 0, 0, 0, 0, time.UTC), parsed)

	_, err = Parse(Time, "not a time", time.UTC)
	assert.Error(t, err)
}
