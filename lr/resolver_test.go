package lr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvesDeclaredValueTypes(t *testing.T) {
	cases := []struct {
		valueType ValueType
		hint      SQLType
		expected  Category
	}{
		{ValueDate, SQLNone, CategoryDate},
		{ValueDate, SQLTimestamp, CategoryDate},
		{ValueTime, SQLNone, CategoryTime},
		{ValueTime, SQLDate, CategoryTime},
		{ValueDateTime, SQLNone, CategoryDateTime},
		{ValueDateTime, SQLTime, CategoryDateTime},
		{ValueString, SQLNone, CategoryString},
		{ValueNumeric, SQLNone, CategoryNumeric},
		{ValueBoolean, SQLNone, CategoryBoolean},
		{ValueOther, SQLNone, CategoryGeneric},
		{ValueOther, SQLTimestamp, CategoryGeneric},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, Resolve(c.valueType, c.hint), "%s with %s", c.valueType, c.hint)
	}
}

func TestResolvesInstantsFromSQLHint(t *testing.T) {
	assert.Equal(t, CategoryDate, Resolve(ValueInstant, SQLDate))
	assert.Equal(t, CategoryTime, Resolve(ValueInstant, SQLTime))
	assert.Equal(t, CategoryDateTime, Resolve(ValueInstant, SQLTimestamp))
	assert.Equal(t, CategoryDateTime, Resolve(ValueInstant, SQLNone))
}

func TestResolverOverridesWin(t *testing.T) {
	overrides := map[ValueType]Category{ValueInstant: CategoryDateTime, ValueOther: CategoryString}
	resolver := NewTypeResolver(overrides)

	// later changes to the caller's map are not observed
	overrides[ValueDate] = CategoryString

	assert.Equal(t, CategoryDateTime, resolver.Resolve(ValueInstant, SQLDate))
	assert.Equal(t, CategoryString, resolver.Resolve(ValueOther, SQLNone))
	assert.Equal(t, CategoryDate, resolver.Resolve(ValueDate, SQLNone))
}

func TestParsesNames(t *testing.T) {
	vt, err := ParseValueType("Instant")
	require.NoError(t, err)
	assert.Equal(t, ValueInstant, vt)

	st, err := ParseSQLType("")
	require.NoError(t, err)
	assert.Equal(t, SQLNone, st)

	c, err := ParseCategory("datetime")
	require.NoError(t, err)
	assert.Equal(t, CategoryDateTime, c)

	_, err = ParseCategory("colour")
	var configuration *ConfigurationError
	assert.ErrorAs(t, err, &configuration)
}
