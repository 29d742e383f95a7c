package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Lixing-Zhang/aami-bangali/internal/icons"
	"github.com/Lixing-Zhang/aami-bangali/internal/models"
)

//go:embed menu.yaml
var defaultMenu []byte

// ErrInvalidMenu wraps every validation failure reported by Load.
var ErrInvalidMenu = errors.New("invalid menu")

// Menu is the static, read-only catalog. It is built once at startup and
// never mutated afterwards, so it is safe for concurrent readers.
type Menu struct {
	restaurant models.Restaurant
	categories []models.Category
	byCategory map[string]int
	byItem     map[string]itemRef
}

type itemRef struct {
	category int
	index    int
}

type menuFile struct {
	Restaurant restaurantFile `yaml:"restaurant"`
	Categories []categoryFile `yaml:"categories"`
}

type restaurantFile struct {
	Name      string   `yaml:"name"`
	Tagline   string   `yaml:"tagline"`
	Address   []string `yaml:"address"`
	Hours     string   `yaml:"hours"`
	MapsURL   string   `yaml:"maps_url"`
	Phone     string   `yaml:"phone"`
	HeroImage string   `yaml:"hero_image"`
	Currency  string   `yaml:"currency"`
}

type categoryFile struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Icon  string     `yaml:"icon"`
	Items []itemFile `yaml:"items"`
}

type itemFile struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Price       int64  `yaml:"price"`
	Dietary     string `yaml:"dietary"`
	Description string `yaml:"description"`
}

// Default returns the menu embedded in the binary.
func Default() (*Menu, error) {
	return Load(bytes.NewReader(defaultMenu))
}

// LoadFile reads a menu from a YAML file on disk.
func LoadFile(path string) (*Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

// Load decodes and validates a YAML menu. All validation problems are
// reported together.
func Load(r io.Reader) (*Menu, error) {
	var mf menuFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&mf); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	if err := mf.validate(); err != nil {
		return nil, err
	}

	return build(mf)
}

func (mf menuFile) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidMenu}, args...)...))
	}

	if strings.TrimSpace(mf.Restaurant.Name) == "" {
		fail("restaurant name is required")
	}
	if len(mf.Categories) == 0 {
		fail("at least one category is required")
	}

	categoryIDs := make(map[string]bool)
	itemIDs := make(map[string]string)
	for i, c := range mf.Categories {
		switch {
		case c.ID == "":
			fail("category %d: id is required", i)
		case categoryIDs[c.ID]:
			fail("category %q: duplicate id", c.ID)
		}
		categoryIDs[c.ID] = true

		if strings.TrimSpace(c.Name) == "" {
			fail("category %q: name is required", c.ID)
		}

		for j, it := range c.Items {
			if it.ID == "" {
				fail("category %q item %d: id is required", c.ID, j)
				continue
			}
			if owner, dup := itemIDs[it.ID]; dup {
				fail("item %q: duplicate id (already in category %q)", it.ID, owner)
			}
			itemIDs[it.ID] = c.ID

			if strings.TrimSpace(it.Name) == "" {
				fail("item %q: name is required", it.ID)
			}
			if it.Price < 0 {
				fail("item %q: price must not be negative", it.ID)
			}
			if !models.Dietary(it.Dietary).Valid() {
				fail("item %q: dietary must be %q or %q, got %q", it.ID, models.Veg, models.NonVeg, it.Dietary)
			}
		}
	}

	return errors.Join(errs...)
}

func build(mf menuFile) (*Menu, error) {
	currency := strings.ToUpper(strings.TrimSpace(mf.Restaurant.Currency))
	if currency == "" {
		currency = "INR"
	}

	m := &Menu{
		restaurant: models.Restaurant{
			Name:     mf.Restaurant.Name,
			Tagline:  mf.Restaurant.Tagline,
			Address:  append([]string(nil), mf.Restaurant.Address...),
			Hours:    mf.Restaurant.Hours,
			MapsURL:  mf.Restaurant.MapsURL,
			Phone:    mf.Restaurant.Phone,
			HeroURL:  mf.Restaurant.HeroImage,
			Currency: currency,
		},
		categories: make([]models.Category, 0, len(mf.Categories)),
		byCategory: make(map[string]int, len(mf.Categories)),
		byItem:     make(map[string]itemRef),
	}

	for ci, c := range mf.Categories {
		cat := models.Category{
			ID:    c.ID,
			Name:  c.Name,
			Icon:  c.Icon,
			Items: make([]models.MenuItem, 0, len(c.Items)),
		}
		for ii, it := range c.Items {
			html, err := RenderDescription(it.Description)
			if err != nil {
				return nil, fmt.Errorf("render description of %q: %w", it.ID, err)
			}
			cat.Items = append(cat.Items, models.MenuItem{
				ID:              it.ID,
				Name:            it.Name,
				Price:           it.Price,
				Dietary:         models.Dietary(it.Dietary),
				Description:     it.Description,
				DescriptionHTML: html,
			})
			m.byItem[it.ID] = itemRef{category: ci, index: ii}
		}
		m.categories = append(m.categories, cat)
		m.byCategory[c.ID] = ci
	}

	return m, nil
}

// Restaurant returns the restaurant profile.
func (m *Menu) Restaurant() models.Restaurant {
	return m.restaurant
}

// Categories returns the categories in display order. The returned slice is
// a copy; the items inside share backing arrays and must not be modified.
func (m *Menu) Categories() []models.Category {
	out := make([]models.Category, len(m.categories))
	copy(out, m.categories)
	return out
}

// First returns the first category, the initial active tab.
func (m *Menu) First() models.Category {
	return m.categories[0]
}

// Category looks up a category by id.
func (m *Menu) Category(id string) (models.Category, bool) {
	i, ok := m.byCategory[id]
	if !ok {
		return models.Category{}, false
	}
	return m.categories[i], true
}

// Item looks up a menu item by id across all categories.
func (m *Menu) Item(id string) (models.MenuItem, bool) {
	ref, ok := m.byItem[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return m.categories[ref.category].Items[ref.index], true
}

// ItemCount returns the number of items across all categories.
func (m *Menu) ItemCount() int {
	return len(m.byItem)
}

// UnmappedIcons returns the ids of categories whose icon key has no SVG.
// Those categories still render, with the fallback icon.
func (m *Menu) UnmappedIcons() []string {
	var ids []string
	for _, c := range m.categories {
		if !icons.Known(c.Icon) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
