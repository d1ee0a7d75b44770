package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "Makanan & Minuman", c.Label("1"))
	assert.Equal(t, "Transportasi", c.Label("2"))
	assert.Equal(t, "Hiburan", c.Label("3"))
	assert.Equal(t, "Lainnya", c.Label("4"))
	assert.Equal(t, "Other", c.Label("99"))
	assert.True(t, c.Known("4"))
	assert.False(t, c.Known("99"))
	assert.Len(t, c.Entries(), 4)
}

func TestColor_Cycles(t *testing.T) {
	c := Default()
	tests := []struct {
		position int
		slot     int
		color    string
	}{
		{0, 0, "#3B82F6"},
		{4, 4, "#A855F7"},
		{5, 0, "#3B82F6"},
		{7, 2, "#EAB308"},
	}
	for _, tt := range tests {
		slot, color := c.Color(tt.position)
		assert.Equal(t, tt.slot, slot)
		assert.Equal(t, tt.color, color)
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "", []string{})
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = New([]Entry{{ID: " ", Label: "x"}}, "", nil)
	assert.Error(t, err)

	_, err = New([]Entry{{ID: "1", Label: "a"}, {ID: "1", Label: "b"}}, "", nil)
	assert.Error(t, err)

	c, err := New(nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultFallbackLabel, c.FallbackLabel())
	assert.Equal(t, DefaultPalette, c.Palette())
}

func TestEntriesAreCopies(t *testing.T) {
	c := Default()
	e := c.Entries()
	e[0].Label = "mutated"
	p := c.Palette()
	p[0] = "#mutated"

	assert.Equal(t, "Makanan & Minuman", c.Label("1"))
	_, color := c.Color(0)
	assert.Equal(t, "#3B82F6", color)
}

func TestLoad_TOML(t *testing.T) {
	c, err := Load("testdata/catalog.toml")
	require.NoError(t, err)

	assert.Equal(t, "Makanan & Minuman", c.Label("1"), "numeric ids are read as text")
	assert.Equal(t, "Pendidikan", c.Label("10"))
	assert.Equal(t, "Lainnya", c.Label("2"))
	assert.Equal(t, []string{"#000000", "#FFFFFF"}, c.Palette())
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	c, err := Load("testdata/partial.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Rent", c.Label("7"))
	assert.Equal(t, DefaultFallbackLabel, c.FallbackLabel())
	assert.Equal(t, DefaultPalette, c.Palette())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.toml")
	assert.Error(t, err)
}
