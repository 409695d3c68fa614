package prompts

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategy_ZeroValueIsDefault(t *testing.T) {
	var s Strategy
	assert.Equal(t, StrategyDefault, s.Kind())

	v, err := s.Select([]string{"v1", "v2"}, "v2", nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestStrategy_DefaultDoesNotValidate(t *testing.T) {
	v, err := Default().Select([]string{"v1"}, "missing", nil)
	require.NoError(t, err)
	assert.Equal(t, "missing", v)
}

func TestStrategy_RandomUsesPicker(t *testing.T) {
	available := []string{"a", "b", "c"}
	for i, want := range available {
		idx := i
		v, err := Random().Select(available, "a", func(n int) int {
			assert.Equal(t, 3, n)
			return idx
		})
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestStrategy_RandomEmpty(t *testing.T) {
	_, err := Random().Select(nil, "v1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoVersionsAvailable))
}

func TestStrategy_RandomPickerOutOfRange(t *testing.T) {
	_, err := Random().Select([]string{"v1"}, "v1", func(int) int { return 5 })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0, 1)")
}

func TestStrategy_RandomDefaultPickerStaysInRange(t *testing.T) {
	available := []string{"v1", "v2", "v3"}
	for i := 0; i < 100; i++ {
		v, err := Random().Select(available, "v1", nil)
		require.NoError(t, err)
		assert.Contains(t, available, v)
	}
}

func TestStrategy_CustomReturnsRuleVerbatim(t *testing.T) {
	var seen []string
	s := Custom(func(available []string) string {
		seen = available
		return "not-registered"
	})

	v, err := s.Select([]string{"v1", "v2"}, "v1", nil)
	require.NoError(t, err)
	assert.Equal(t, "not-registered", v)
	assert.Equal(t, []string{"v1", "v2"}, seen)
	assert.Equal(t, StrategyCustom, s.Kind())
}

func TestStrategy_CustomWithoutRule(t *testing.T) {
	_, err := Custom(nil).Select([]string{"v1"}, "v1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want StrategyKind
	}{
		{"", StrategyDefault},
		{"default", StrategyDefault},
		{"DEFAULT", StrategyDefault},
		{" random ", StrategyRandom},
	}
	for _, tt := range tests {
		s, err := ParseStrategy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, s.Kind(), tt.in)
	}

	_, err := ParseStrategy("weighted")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestStrategyKind_Text(t *testing.T) {
	var k StrategyKind
	require.NoError(t, k.UnmarshalText([]byte("random")))
	assert.Equal(t, StrategyRandom, k)

	b, err := k.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "random", string(b))

	_, err = StrategyCustom.MarshalText()
	assert.Error(t, err)
	assert.Error(t, k.UnmarshalText([]byte("bogus")))
}
