package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"verbena-be/internal/logger"

	"go.uber.org/zap"
)

// IntegrityIssues inspects a product for catalog data problems that the
// storefront tolerates with deterministic fallbacks: empty option value
// lists, duplicate values within an option, variants whose option
// assignment is not total, and duplicate variant combinations (for
// which resolution prefers the first variant in catalog order).
func IntegrityIssues(p *Product) []string {
	var issues []string

	for _, opt := range p.Options {
		if len(opt.Values) == 0 {
			issues = append(issues, fmt.Sprintf("option %q has no values", opt.Name))
		}

		seen := make(map[string]bool, len(opt.Values))
		for _, v := range opt.Values {
			if seen[v] {
				issues = append(issues, fmt.Sprintf("option %q lists value %q more than once", opt.Name, v))
			}
			seen[v] = true
		}
	}

	combos := make(map[string]string, len(p.Variants))
	for _, v := range p.Variants {
		if len(v.Options) != len(p.Options) {
			issues = append(issues, fmt.Sprintf("variant %s does not assign exactly one value per option", v.ID))
		} else {
			for _, opt := range p.Options {
				if _, ok := v.Options[opt.Name]; !ok {
					issues = append(issues, fmt.Sprintf("variant %s is missing a value for option %q", v.ID, opt.Name))
				}
			}
		}

		key := comboKey(v.Options)
		if firstID, ok := combos[key]; ok {
			issues = append(issues, fmt.Sprintf("variant %s duplicates the combination of variant %s", v.ID, firstID))
		} else {
			combos[key] = v.ID
		}
	}

	return issues
}

// LogIntegrityIssues emits a warning per issue. Integrity problems never
// block the shopping flow.
func LogIntegrityIssues(ctx context.Context, p *Product) {
	issues := IntegrityIssues(p)
	if len(issues) == 0 {
		return
	}

	log := logger.FromCtx(ctx).With(
		zap.String("product_id", p.ID),
		zap.String("slug", p.Slug),
	)
	for _, issue := range issues {
		log.Warn("catalog integrity issue", zap.String("issue", issue))
	}
}

// comboKey builds a deterministic key for an option-value assignment.
func comboKey(options map[string]string) string {
	parts := make([]string, 0, len(options))
	for name, value := range options {
		parts = append(parts, name+"="+value)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}
