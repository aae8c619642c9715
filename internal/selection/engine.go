package selection

import (
	"verbena-be/internal/catalog"
	"verbena-be/internal/logger"

	"go.uber.org/zap"
)

// ResolveVariant returns the variant whose option-value mapping exactly
// equals the selection. A partial selection never matches: there is no
// "partially" resolved, priceable state. When catalog data carries
// duplicate combinations the first variant in catalog order wins and a
// warning is logged.
func ResolveVariant(p *catalog.Product, sel Selection) *catalog.Variant {
	if !p.HasVariants() || !sel.IsComplete(p) {
		return nil
	}

	var match *catalog.Variant
	for i := range p.Variants {
		v := &p.Variants[i]
		if !mappingEquals(p, v.Options, sel) {
			continue
		}
		if match == nil {
			match = v
			continue
		}
		logger.L().Warn("duplicate variant combination, keeping first in catalog order",
			zap.String("product_id", p.ID),
			zap.String("kept_variant", match.ID),
			zap.String("ignored_variant", v.ID),
		)
	}
	return match
}

// ValueAvailable reports whether choosing candidate for option, while
// keeping every other currently chosen value fixed, could still resolve
// to an in-stock variant. Options not yet chosen are left free, so the
// answer depends on selection order rather than option declaration
// order.
func ValueAvailable(p *catalog.Product, sel Selection, option, candidate string) bool {
	hypothetical := sel.With(option, candidate)

	for i := range p.Variants {
		v := &p.Variants[i]
		if !v.InStock() {
			continue
		}
		if agreesWithFixed(v.Options, hypothetical) {
			return true
		}
	}
	return false
}

// CanAddToCart is true only when either the product has no variants and
// is in stock, or the selection resolves to an in-stock variant. An
// option with no permissible values leaves the product without any
// purchasable state.
func CanAddToCart(p *catalog.Product, sel Selection) bool {
	for _, opt := range p.Options {
		if len(opt.Values) == 0 {
			return false
		}
	}

	if !p.HasVariants() {
		return p.InStock()
	}

	v := ResolveVariant(p, sel)
	return v != nil && v.InStock()
}

// mappingEquals compares a variant's total assignment against a
// complete selection over the product's options.
func mappingEquals(p *catalog.Product, mapping map[string]string, sel Selection) bool {
	if len(mapping) != len(p.Options) {
		return false
	}
	for _, opt := range p.Options {
		if mapping[opt.Name] != sel[opt.Name] {
			return false
		}
	}
	return true
}

// agreesWithFixed checks that the variant mapping matches every entry
// the shopper has fixed, ignoring still-unchosen options.
func agreesWithFixed(mapping map[string]string, fixed Selection) bool {
	for option, value := range fixed {
		if mapping[option] != value {
			return false
		}
	}
	return true
}
