package inicfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionCollection(t *testing.T) {
	content := `[Limits]
A = 1
B = 2
SomethingElse = note
C = 3
D = 4
`
	schema := func(c *ConfigFile) error {
		_, err := NewSection(c, "Limits",
			Str("SomethingElse"),
			Collection(func(name string) *Option { return Int(name) }),
		)
		return err
	}
	path := writeINI(t, content)
	cfg, err := Open(path, schema)
	require.NoError(t, err)
	sec, _ := cfg.Section("Limits")

	t.Run("ExpandsUnclaimedKeys", func(t *testing.T) {
		// Explicit option first, then expanded keys in file order
		assert.Equal(t, []string{"SomethingElse", "A", "B", "C", "D"}, sec.Keys())

		for name, want := range map[string]int{"A": 1, "B": 2, "C": 3, "D": 4} {
			v, err := sec.Value(name)
			require.NoError(t, err)
			assert.Equal(t, want, v, name)
		}
		v, err := sec.Value("SomethingElse")
		require.NoError(t, err)
		assert.Equal(t, "note", v)
	})

	t.Run("CollectionItselfNotStored", func(t *testing.T) {
		assert.False(t, sec.Has(""))
		assert.Equal(t, 5, sec.Len())
	})

	t.Run("ExpandedOptionsAreMutable", func(t *testing.T) {
		require.NoError(t, cfg.Set("Limits", "B", 20))
		require.NoError(t, cfg.Save())

		reread, err := Open(path, schema)
		require.NoError(t, err)
		rsec, _ := reread.Section("Limits")
		v, err := rsec.Value("B")
		require.NoError(t, err)
		assert.Equal(t, 20, v)
	})
}

func TestOptionCollectionEmptySection(t *testing.T) {
	schema := func(c *ConfigFile) error {
		_, err := NewSection(c, "Limits",
			Collection(func(name string) *Option { return Int(name) }),
		)
		return err
	}
	cfg, err := Open(writeINI(t, "[Limits]\n"), schema)
	require.NoError(t, err)
	sec, _ := cfg.Section("Limits")
	assert.Equal(t, 0, sec.Len())
}

func TestSectionCollection(t *testing.T) {
	content := `[Unrelated]
Comment = static

[Host1]
Addr = 10.0.0.1
Port = 1001

[Host2]
Addr = 10.0.0.2
Port = 1002

[Host3]
Addr = 10.0.0.3
Port = 1003
`
	schema := func(c *ConfigFile) error {
		if _, err := NewSection(c, "Unrelated", Str("Comment")); err != nil {
			return err
		}
		return NewSectionCollection(c, Str("Addr"), Int("Port"))
	}
	path := writeINI(t, content)
	cfg, err := Open(path, schema)
	require.NoError(t, err)

	t.Run("ExpandsUnclaimedSections", func(t *testing.T) {
		assert.Equal(t, []string{"Unrelated", "Host1", "Host2", "Host3"}, cfg.SectionNames())

		for name, port := range map[string]int{"Host1": 1001, "Host2": 1002, "Host3": 1003} {
			sec, err := cfg.Section(name)
			require.NoError(t, err)
			v, err := sec.Value("Port")
			require.NoError(t, err)
			assert.Equal(t, port, v, name)
		}
	})

	t.Run("ExplicitSectionUntouched", func(t *testing.T) {
		sec, err := cfg.Section("Unrelated")
		require.NoError(t, err)
		assert.Equal(t, []string{"Comment"}, sec.Keys())
	})

	t.Run("CopiesAreIndependent", func(t *testing.T) {
		require.NoError(t, cfg.Set("Host2", "Port", 2222))

		h1, _ := cfg.Section("Host1")
		h3, _ := cfg.Section("Host3")
		v1, err := h1.Value("Port")
		require.NoError(t, err)
		assert.Equal(t, 1001, v1)
		v3, err := h3.Value("Port")
		require.NoError(t, err)
		assert.Equal(t, 1003, v3)

		h2, _ := cfg.Section("Host2")
		v2, err := h2.Value("Port")
		require.NoError(t, err)
		assert.Equal(t, 2222, v2)
	})

	t.Run("MutationsPersist", func(t *testing.T) {
		require.NoError(t, cfg.Save())
		reread, err := Open(path, schema)
		require.NoError(t, err)
		sec, _ := reread.Section("Host2")
		v, err := sec.Value("Port")
		require.NoError(t, err)
		assert.Equal(t, 2222, v)
	})
}

func TestSectionCollectionWithDynamicOptions(t *testing.T) {
	content := `[Job1]
retries = 2
timeout = 30

[Job2]
retries = 5
`
	schema := func(c *ConfigFile) error {
		return NewSectionCollection(c,
			Collection(func(name string) *Option { return Int(name) }))
	}
	cfg, err := Open(writeINI(t, content), schema)
	require.NoError(t, err)

	j1, err := cfg.Section("Job1")
	require.NoError(t, err)
	assert.Equal(t, []string{"retries", "timeout"}, j1.Keys())

	j2, err := cfg.Section("Job2")
	require.NoError(t, err)
	assert.Equal(t, []string{"retries"}, j2.Keys())
	v, err := j2.Value("retries")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}
