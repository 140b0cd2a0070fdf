package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tax, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, tax.Categories, len(defaultCategories))
	require.Equal(t, "Income", tax.Categories[0].Name)

	// file now exists and loads back identically
	_, err = os.Stat(Path(dir))
	require.NoError(t, err)
	again, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, tax, again)
}

func TestLoadCustomFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	custom := `
[category.pets]
name = "Pets"
color = "#f9e2af"
sort_order = 1

[category.misc]
name = "Misc"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.toml"), []byte(custom), 0o644))

	tax, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, tax.Categories, 2)
	require.Equal(t, "Pets", tax.Categories[0].Name)
	require.Equal(t, "#f9e2af", tax.ColorFor("pets"))
	// missing color falls back to grey
	require.Equal(t, "#7f849c", tax.ColorFor("Misc"))
}

func TestSaveRoundTrips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tax := Taxonomy{Categories: []Category{
		{Key: "food", Name: "Food", Color: "#94e2d5", SortOrder: 1},
		{Key: "travel", Name: "Travel", Color: "#89b4fa", SortOrder: 2},
	}}
	require.NoError(t, Save(dir, tax))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, tax, loaded)
	require.Equal(t, []string{"Food", "Travel"}, loaded.Names())
}

func TestColorForUnknownCategory(t *testing.T) {
	t.Parallel()

	tax := Taxonomy{Categories: defaultCategories}
	require.Equal(t, "#7f849c", tax.ColorFor("does not exist"))
	// lookup is case insensitive
	require.Equal(t, "#94e2d5", tax.ColorFor("fOOd"))
}
