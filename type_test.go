package inicfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedAccessors(t *testing.T) {
	content := `[V]
Name = widget
Count = 42
Ratio = 2.5
Enabled = yes
Numeric = 17
`
	cfg := openWith(t, content, "V",
		Str("Name"),
		Int("Count"),
		Float("Ratio"),
		Bool("Enabled"),
		Str("Numeric"),
	)
	sec, _ := cfg.Section("V")

	t.Run("String", func(t *testing.T) {
		v, err := sec.String("Name")
		require.NoError(t, err)
		assert.Equal(t, "widget", v)

		// Non-string values convert
		v, err = sec.String("Count")
		require.NoError(t, err)
		assert.Equal(t, "42", v)

		v, err = sec.String("Enabled")
		require.NoError(t, err)
		assert.Equal(t, "true", v)
	})

	t.Run("Int64", func(t *testing.T) {
		v, err := sec.Int64("Count")
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		// String values parse
		v, err = sec.Int64("Numeric")
		require.NoError(t, err)
		assert.Equal(t, int64(17), v)

		// Floats truncate
		v, err = sec.Int64("Ratio")
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)

		// Bools map to 0/1
		v, err = sec.Int64("Enabled")
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)

		_, err = sec.Int64("Name")
		assert.ErrorContains(t, err, "cannot convert")
	})

	t.Run("Bool", func(t *testing.T) {
		v, err := sec.Bool("Enabled")
		require.NoError(t, err)
		assert.True(t, v)

		// Non-zero numbers are true
		v, err = sec.Bool("Count")
		require.NoError(t, err)
		assert.True(t, v)

		_, err = sec.Bool("Name")
		assert.ErrorContains(t, err, "cannot convert")
	})

	t.Run("Float64", func(t *testing.T) {
		v, err := sec.Float64("Ratio")
		require.NoError(t, err)
		assert.Equal(t, 2.5, v)

		v, err = sec.Float64("Count")
		require.NoError(t, err)
		assert.Equal(t, 42.0, v)

		v, err = sec.Float64("Numeric")
		require.NoError(t, err)
		assert.Equal(t, 17.0, v)
	})

	t.Run("MissingOption", func(t *testing.T) {
		_, err := sec.String("Absent")
		var noe *NoOptionError
		assert.ErrorAs(t, err, &noe)
	})
}

func TestTypedAccessorNilHandling(t *testing.T) {
	cfg := openWith(t, "[V]\nName = none\n", "V", Str("Name"))
	sec, _ := cfg.Section("V")

	// nil reads as the empty string
	v, err := sec.String("Name")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	// but not as a number or bool
	_, err = sec.Int64("Name")
	assert.ErrorContains(t, err, "is nil")
	_, err = sec.Bool("Name")
	assert.ErrorContains(t, err, "is nil")
	_, err = sec.Float64("Name")
	assert.ErrorContains(t, err, "is nil")
}
