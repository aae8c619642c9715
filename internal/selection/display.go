package selection

import (
	"math"

	"verbena-be/internal/catalog"
)

// ValueState describes one candidate option value for rendering:
// whether choosing it could still lead to an in-stock variant, whether
// it is currently chosen, and its swatch color for color options.
type ValueState struct {
	Value     string  `json:"value"`
	Available bool    `json:"available"`
	Selected  bool    `json:"selected"`
	Swatch    *string `json:"swatch,omitempty"`
}

type OptionState struct {
	Name   string       `json:"name"`
	Values []ValueState `json:"values"`
}

// DisplayState is the full purchasing state for a (product, selection)
// pair, recomputed wholesale on every selection change.
type DisplayState struct {
	MatchedVariantID   *string       `json:"matched_variant_id,omitempty"`
	Price              float64       `json:"price"`
	CompareAtPrice     *float64      `json:"compare_at_price,omitempty"`
	DiscountPercentage *int          `json:"discount_percentage,omitempty"`
	ImageURL           *string       `json:"image_url,omitempty"`
	InStock            bool          `json:"in_stock"`
	CanAddToCart       bool          `json:"can_add_to_cart"`
	Options            []OptionState `json:"options,omitempty"`
}

// Display maps a (product, selection) pair to its display state. With a
// matched variant the variant's price, compare-at, image and stock
// apply; otherwise the product base price and first image, with stock
// being the OR across variants.
func Display(p *catalog.Product, sel Selection) DisplayState {
	state := DisplayState{
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		ImageURL:       p.FirstImage(),
		InStock:        p.InStock(),
		CanAddToCart:   CanAddToCart(p, sel),
	}

	if v := ResolveVariant(p, sel); v != nil {
		state.MatchedVariantID = &v.ID
		state.Price = v.Price
		state.CompareAtPrice = v.CompareAtPrice
		state.InStock = v.InStock()
		if v.ImageURL != nil {
			state.ImageURL = v.ImageURL
		}
	}

	state.DiscountPercentage = DiscountPercent(state.Price, state.CompareAtPrice)
	state.Options = optionStates(p, sel)

	return state
}

// DiscountPercent is present only when compareAt > price, as the
// integer floor of 100 × (1 − price/compareAt). Absence suppresses the
// discount badge, so zero is never returned in place of nil.
func DiscountPercent(price float64, compareAt *float64) *int {
	if compareAt == nil || *compareAt <= price || *compareAt <= 0 {
		return nil
	}
	pct := int(math.Floor(100 * (1 - price / *compareAt)))
	return &pct
}

// optionStates recomputes availability for every value of every option.
// Availability is recomputed per candidate against the current
// selection, never against a fixed option evaluation order.
func optionStates(p *catalog.Product, sel Selection) []OptionState {
	if len(p.Options) == 0 {
		return nil
	}

	states := make([]OptionState, 0, len(p.Options))
	for _, opt := range p.Options {
		os := OptionState{
			Name:   opt.Name,
			Values: make([]ValueState, 0, len(opt.Values)),
		}

		chosen, _ := sel.Value(opt.Name)
		for _, value := range opt.Values {
			os.Values = append(os.Values, ValueState{
				Value:     value,
				Available: ValueAvailable(p, sel, opt.Name, value),
				Selected:  chosen == value,
				Swatch:    opt.Swatch(value),
			})
		}

		states = append(states, os)
	}

	return states
}
