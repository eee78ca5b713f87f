package rules

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/models"
)

// ActiveRule is the rule Resolve selected for a scan context
type ActiveRule struct {
	Rule    models.SiteRule
	Custom  bool // true when the rule came from user configuration
	Generic bool // true when the catch-all fallback was selected
}

// Resolver picks the rule to apply to a page. Custom rules are consulted in
// the order given, then builtins; the generic rule matches everything and is
// always last.
type Resolver struct {
	builtins []models.SiteRule
	logger   arbor.ILogger
}

func NewResolver(logger arbor.ILogger) *Resolver {
	return &Resolver{
		builtins: BuiltinRules(),
		logger:   logger,
	}
}

// Resolve returns the first rule whose match accepts the context. Disabled
// custom rules are skipped; resolution never fails because the generic rule
// matches unconditionally.
func (r *Resolver) Resolve(ctx models.ScanContext, custom []models.SiteRule) ActiveRule {
	for _, rule := range custom {
		if !rule.Enabled {
			continue
		}
		if rule.Match.Matches(ctx) {
			r.logger.Debug().
				Str("rule_id", rule.ID).
				Str("host", ctx.Host).
				Msg("Resolved custom rule")
			return ActiveRule{Rule: rule, Custom: true}
		}
	}

	for _, rule := range r.builtins {
		if !rule.Enabled {
			continue
		}
		if rule.Match.Matches(ctx) {
			r.logger.Debug().
				Str("rule_id", rule.ID).
				Str("host", ctx.Host).
				Msg("Resolved builtin rule")
			return ActiveRule{Rule: rule}
		}
	}

	r.logger.Debug().
		Str("host", ctx.Host).
		Msg("No site rule matched, using generic rule")
	return ActiveRule{Rule: GenericRule(), Generic: true}
}
