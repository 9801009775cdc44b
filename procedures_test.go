package hlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProceduresLifecycle(t *testing.T) {
	p := NewProcedures(newTestClock(t, newFakeWallClock(baseTime)))

	out, err := p.Call("hlc_zero", "n1")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01T00:00:00Z-0000-n1", out)

	out, err = p.Call("hlc_from_date", "2024-01-15T10:30:00.123Z", "n1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00.123Z-0000-n1", out)

	out, err = p.Call("hlc_increment", "n1", "2024-01-15T10:30:00.123Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00.123Z-0001-n1", out)

	out, err = p.Call("hlc_increment", "n1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00.123Z-0002-n1", out)

	out, err = p.Call("hlc_merge", "n1", "2024-01-15T10:30:05.123Z-0003-n2", "2024-01-15T10:30:05.123Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:05.123Z-0003-n1", out)

	out, err = p.Call("hlc_get_state", "n1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:05.123Z-0003-n1", out)

	_, err = p.Call("hlc_reset", "n1")
	require.NoError(t, err)
	out, err = p.Call("hlc_get_state", "n1")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01T00:00:00Z-0000-n1", out)

	out, err = p.Call("hlc_now", "n2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00.123Z-0000-n2", out)
}

func TestProceduresErrors(t *testing.T) {
	p := NewProcedures(newTestClock(t, newFakeWallClock(baseTime)))

	_, err := p.Call("hlc_missing", "n1")
	assert.ErrorIs(t, err, ErrUnknownProcedure)

	_, err = p.Call("hlc_zero")
	assert.ErrorIs(t, err, ErrArgumentCount)

	_, err = p.Call("hlc_merge", "n1", "a", "b", "c")
	assert.ErrorIs(t, err, ErrArgumentCount)

	_, err = p.Call("hlc_parse", "garbage")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = p.Call("hlc_from_date", "garbage", "n1")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = p.Call("hlc_merge", "n1", "2024-01-15T10:30:01Z-0000-n1")
	assert.ErrorIs(t, err, ErrDuplicateNode)

	_, err = p.Call("hlc_merge", "n1", "garbage")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestProceduresComparisons(t *testing.T) {
	p := NewProcedures(newTestClock(t, newFakeWallClock(baseTime)))
	a := "2024-01-15T10:30:00Z-0001-n1"
	b := "2024-01-15T10:30:00Z-0002-n1"

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"hlc_compare", []string{a, b}, "-1"},
		{"hlc_compare", []string{b, a}, "1"},
		{"hlc_compare", []string{a, a}, "0"},
		{"hlc_lt", []string{a, b}, "true"},
		{"hlc_gt", []string{a, b}, "false"},
		{"hlc_eq", []string{a, a}, "true"},
		{"hlc_lte", []string{a, a}, "true"},
		{"hlc_gte", []string{a, b}, "false"},
		{"hlc_to_string", []string{"2024-01-15T10:30:00+01:00-00ab-n1"}, "2024-01-15T09:30:00Z-00AB-n1"},
	}

	for _, test := range tests {
		out, err := p.Call(test.name, test.args...)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.expected, out, "%s(%v)", test.name, test.args)
	}

	_, err := p.Call("hlc_lt", a, "garbage")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestProceduresSimpleVariants(t *testing.T) {
	c := newTestClock(t, newFakeWallClock(baseTime))
	p := NewProcedures(c)

	_, err := p.Call("hlc_from_date", "2024-01-15T12:00:00Z", "n1")
	require.NoError(t, err)

	out, err := p.Call("hlc_increment_simple", "n1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00.123Z-0000-n1", out, "drift falls back to now")

	out, err = p.Call("hlc_merge_simple", "n1", "2024-01-15T10:30:01Z-0000-n1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00.123Z-0000-n1", out)

	_, err = p.Call("hlc_merge_simple", "n1", "garbage")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestProceduresRegistry(t *testing.T) {
	p := NewProcedures(newTestClock(t, newFakeWallClock(baseTime)))

	assert.Contains(t, p.Names(), "hlc_increment")
	assert.Len(t, p.Names(), 17)

	assert.Panics(t, func() {
		p.Register("hlc_zero", 1, 1, func(*Clock, []string) (string, error) { return "", nil })
	})

	p.Register("hlc_nodes", 0, 0, func(c *Clock, args []string) (string, error) {
		return "", nil
	})
	_, err := p.Call("hlc_nodes")
	assert.NoError(t, err)

	assert.True(t, p.Unregister("hlc_nodes"))
	assert.False(t, p.Unregister("hlc_nodes"))
	_, err = p.Call("hlc_nodes")
	assert.ErrorIs(t, err, ErrUnknownProcedure)
}
