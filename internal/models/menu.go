package models

import "html/template"

// Dietary classifies a dish for display purposes.
type Dietary string

const (
	Veg    Dietary = "veg"
	NonVeg Dietary = "non-veg"
)

// Valid reports whether d is one of the known classifications.
func (d Dietary) Valid() bool {
	return d == Veg || d == NonVeg
}

// Label returns the human readable form of d.
func (d Dietary) Label() string {
	switch d {
	case Veg:
		return "Vegetarian"
	case NonVeg:
		return "Non-vegetarian"
	default:
		return string(d)
	}
}

// MenuItem is a single purchasable dish. Prices are whole rupees.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Dietary     Dietary `json:"dietary"`
	Description string  `json:"description"`

	// DescriptionHTML is the sanitized rendering of Description.
	DescriptionHTML template.HTML `json:"-"`
}

// Category groups menu items under a tab. Item order is display order.
type Category struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Icon  string     `json:"icon"`
	Items []MenuItem `json:"items"`
}

// Restaurant holds the static profile shown in the hero and location sections.
type Restaurant struct {
	Name     string   `json:"name"`
	Tagline  string   `json:"tagline"`
	Address  []string `json:"address"`
	Hours    string   `json:"hours"`
	MapsURL  string   `json:"mapsUrl"`
	Phone    string   `json:"phone"`
	HeroURL  string   `json:"heroImage,omitempty"`
	Currency string   `json:"currency"`
}

// TelURL returns the tel: link target for the restaurant phone number.
func (r Restaurant) TelURL() string {
	if r.Phone == "" {
		return ""
	}
	return "tel:" + r.Phone
}
