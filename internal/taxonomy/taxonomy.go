// Package taxonomy manages the user's category set: a TOML file with
// per-category display colors and ordering, written with defaults on
// first run.
package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Category is one entry of the taxonomy.
type Category struct {
	Key       string
	Name      string
	Color     string
	SortOrder int
}

// Taxonomy is the loaded category configuration.
type Taxonomy struct {
	Categories []Category
}

type rawFile struct {
	Category map[string]rawCategory `toml:"category"`
}

type rawCategory struct {
	Name      string `toml:"name"`
	Color     string `toml:"color"`
	SortOrder int    `toml:"sort_order"`
}

var defaultCategories = []Category{
	{Key: "income", Name: "Income", Color: "#a6e3a1", SortOrder: 1},
	{Key: "housing", Name: "Housing", Color: "#cba6f7", SortOrder: 2},
	{Key: "food", Name: "Food", Color: "#94e2d5", SortOrder: 3},
	{Key: "transport", Name: "Transport", Color: "#89b4fa", SortOrder: 4},
	{Key: "shopping", Name: "Shopping", Color: "#f2cdcd", SortOrder: 5},
	{Key: "health", Name: "Health", Color: "#74c7ec", SortOrder: 6},
	{Key: "entertainment", Name: "Entertainment", Color: "#f5c2e7", SortOrder: 7},
	{Key: "loan", Name: "Loan", Color: "#fab387", SortOrder: 8},
	{Key: "uncategorised", Name: "Uncategorised", Color: "#7f849c", SortOrder: 9},
}

// Path returns the taxonomy file location under configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, "categories.toml")
}

// Load reads the taxonomy file, writing the default set first when the
// file does not exist yet.
func Load(configDir string) (Taxonomy, error) {
	path := Path(configDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Taxonomy{}, fmt.Errorf("create config dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		tax := Taxonomy{Categories: append([]Category(nil), defaultCategories...)}
		if err := Save(configDir, tax); err != nil {
			return Taxonomy{}, err
		}
		return tax, nil
	}

	var raw rawFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Taxonomy{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return normalize(raw), nil
}

// Save writes the taxonomy back as TOML.
func Save(configDir string, tax Taxonomy) error {
	path := Path(configDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Expense manager categories.\n")
	b.WriteString("# Add [category.<key>] blocks to customise.\n")
	for _, c := range tax.Categories {
		fmt.Fprintf(&b, "\n[category.%s]\n", c.Key)
		fmt.Fprintf(&b, "name = %q\n", c.Name)
		fmt.Fprintf(&b, "color = %q\n", c.Color)
		fmt.Fprintf(&b, "sort_order = %d\n", c.SortOrder)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func normalize(raw rawFile) Taxonomy {
	cats := make([]Category, 0, len(raw.Category))
	next := 1
	for key, item := range raw.Category {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = k
		}
		color := strings.TrimSpace(item.Color)
		if color == "" {
			color = "#7f849c"
		}
		order := item.SortOrder
		if order <= 0 {
			order = next
		}
		next++
		cats = append(cats, Category{Key: k, Name: name, Color: color, SortOrder: order})
	}
	if len(cats) == 0 {
		cats = append([]Category(nil), defaultCategories...)
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return cats[i].Name < cats[j].Name
	})
	return Taxonomy{Categories: cats}
}

// Names returns the category names in display order.
func (t Taxonomy) Names() []string {
	out := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		out = append(out, c.Name)
	}
	return out
}

// ColorFor returns the configured color for a category name, falling
// back to the uncategorised grey.
func (t Taxonomy) ColorFor(name string) string {
	for _, c := range t.Categories {
		if strings.EqualFold(c.Name, name) {
			return c.Color
		}
	}
	return "#7f849c"
}
