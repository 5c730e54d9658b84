package inicfg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair holds a word and its numeric value, written as "word, number".
type pair struct {
	Word   string
	Number int
}

type pairConv struct{}

func (pairConv) FromString(s string) (any, error) {
	word, num, ok := strings.Cut(s, ", ")
	if !ok {
		return nil, fmt.Errorf("invalid pair %q: expected word, number", s)
	}
	var n int
	if _, err := fmt.Sscanf(num, "%d", &n); err != nil {
		return nil, err
	}
	return pair{Word: word, Number: n}, nil
}

func (pairConv) ToString(v any) (string, error) {
	p, ok := v.(pair)
	if !ok {
		return "", fmt.Errorf("expected pair value, got %T", v)
	}
	return fmt.Sprintf("%s, %d", p.Word, p.Number), nil
}

func TestCustomConverter(t *testing.T) {
	path := writeINI(t, "[C]\nEntry = one, 1\n")
	schema := func(c *ConfigFile) error {
		_, err := NewSection(c, "C",
			NewOption("Entry", pairConv{}, WithCheck(pair{})),
		)
		return err
	}
	cfg, err := Open(path, schema)
	require.NoError(t, err)
	sec, _ := cfg.Section("C")

	t.Run("Parse", func(t *testing.T) {
		v, err := sec.Value("Entry")
		require.NoError(t, err)
		assert.Equal(t, pair{Word: "one", Number: 1}, v)
	})

	t.Run("EmptyTokens", func(t *testing.T) {
		// NewOption carries the default empty tokens
		cfg := openWith(t, "[C]\nEntry = none\n", "C",
			NewOption("Entry", pairConv{}))
		sec, _ := cfg.Section("C")
		v, err := sec.Value("Entry")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("TypeCheck", func(t *testing.T) {
		var tce *TypeCheckError
		assert.ErrorAs(t, cfg.Set("C", "Entry", "two, 2"), &tce)
	})

	t.Run("SetAndPersist", func(t *testing.T) {
		require.NoError(t, cfg.Set("C", "Entry", pair{Word: "three", Number: 3}))
		require.NoError(t, cfg.Save())

		reread, err := Open(path, schema)
		require.NoError(t, err)
		sec, _ := reread.Section("C")
		v, err := sec.Value("Entry")
		require.NoError(t, err)
		assert.Equal(t, pair{Word: "three", Number: 3}, v)
	})

	t.Run("ConversionError", func(t *testing.T) {
		_, err := Open(writeINI(t, "[C]\nEntry = malformed\n"), schema)
		assert.ErrorContains(t, err, "invalid pair")
	})
}
