package catalog

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// Option is a named axis of product variation (e.g. Color, Size).
// Swatches maps a value to a CSS color and is only meaningful when
// the option name is "color" (case-insensitive).
type Option struct {
	Name     string            `json:"name"`
	Values   []string          `json:"values"`
	Swatches map[string]string `json:"swatches,omitempty"`
}

// IsColor reports whether this option carries swatch colors.
func (o Option) IsColor() bool {
	return strings.EqualFold(o.Name, "color")
}

// Swatch returns the swatch color for a value, or nil when the option
// is not a color option or no swatch is defined.
func (o Option) Swatch(value string) *string {
	if !o.IsColor() {
		return nil
	}
	if c, ok := o.Swatches[value]; ok {
		return &c
	}
	return nil
}

// Variant is one concrete purchasable combination of option values.
// Options must assign exactly one value per option on the parent product.
type Variant struct {
	ID             string            `json:"id"`
	ProductID      string            `json:"product_id"`
	Options        map[string]string `json:"options"`
	Price          float64           `json:"price"`
	CompareAtPrice *float64          `json:"compare_at_price,omitempty"`
	ImageURL       *string           `json:"image_url,omitempty"`
	Stock          int               `json:"stock"`
}

func (v Variant) InStock() bool {
	return v.Stock > 0
}

// Product is a catalog entry. Owned by the external catalog store and
// read-only to this core.
type Product struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	Price          float64   `json:"price"`
	CompareAtPrice *float64  `json:"compare_at_price,omitempty"`
	Images         []string  `json:"images"`
	Featured       bool      `json:"featured"`
	Stock          int       `json:"stock"`
	Options        []Option  `json:"options,omitempty"`
	Variants       []Variant `json:"variants,omitempty"`
}

func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// OptionByName finds an option by name, case-insensitively.
func (p *Product) OptionByName(name string) *Option {
	for i := range p.Options {
		if strings.EqualFold(p.Options[i].Name, name) {
			return &p.Options[i]
		}
	}
	return nil
}

// VariantByID finds a variant by its identifier.
func (p *Product) VariantByID(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// AnyVariantInStock reports whether at least one variant is purchasable.
func (p *Product) AnyVariantInStock() bool {
	for i := range p.Variants {
		if p.Variants[i].InStock() {
			return true
		}
	}
	return false
}

// InStock is the product-level stock signal: the OR of stock across
// variants, or the product counter when the product has no variants.
func (p *Product) InStock() bool {
	if p.HasVariants() {
		return p.AnyVariantInStock()
	}
	return p.Stock > 0
}

// FirstImage returns the lead catalog image, if any.
func (p *Product) FirstImage() *string {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// PlainDescription renders the rich-text description as plain text by
// stripping markup. Entities introduced by sanitization are unescaped
// so the text reads as written.
func (p *Product) PlainDescription() string {
	if p.Description == nil {
		return ""
	}
	return html.UnescapeString(stripPolicy.Sanitize(*p.Description))
}
