// Package pricing derives order totals from a service definition and the
// user's current configuration.
package pricing

import (
	"fmt"

	"agencyapp/internal/domain"
)

// Totals is the pair of accumulated values shown throughout the wizard.
// No floor is enforced: large negative adjustments may drive either value
// below zero (promotional discounts rely on this).
type Totals struct {
	Price        int64 `json:"price"`
	DeliveryDays int   `json:"deliveryTime"`
}

// Defaults builds the initial configuration for a freshly selected service:
// the first choice of every select option, false for every checkbox.
func Defaults(svc *domain.Service) domain.Configuration {
	cfg := make(domain.Configuration)
	if svc == nil {
		return cfg
	}
	for _, step := range svc.Steps {
		for _, opt := range step.Options {
			switch opt.Type {
			case domain.OptionTypeSelect:
				if len(opt.Choices) > 0 {
					cfg[opt.ID] = domain.SelectValue(opt.Choices[0].Value)
				}
			case domain.OptionTypeCheckbox:
				cfg[opt.ID] = domain.CheckboxValue(false)
			}
		}
	}
	return cfg
}

// ComputeTotals runs the full accumulator: base values plus every applicable
// adjustment. Values that reference no known choice, and options absent from
// the configuration, contribute zero. Inputs are never mutated.
func ComputeTotals(svc *domain.Service, cfg domain.Configuration) Totals {
	if svc == nil {
		return Totals{}
	}
	t := Totals{Price: svc.BasePrice, DeliveryDays: svc.DeliveryDays}
	for _, step := range svc.Steps {
		for i := range step.Options {
			opt := &step.Options[i]
			val, ok := cfg[opt.ID]
			if !ok {
				continue
			}
			price, days := optionContribution(opt, val)
			t.Price += price
			t.DeliveryDays += days
		}
	}
	return t
}

// optionContribution resolves one option's share of the totals
func optionContribution(opt *domain.Option, val domain.Value) (int64, int) {
	switch opt.Type {
	case domain.OptionTypeSelect:
		// Untagged strings from the wire count as selections here.
		if val.Kind == domain.ValueCheckbox {
			return 0, 0
		}
		if choice := opt.FindChoice(val.Str); choice != nil {
			return choice.PriceAdjust, choice.DeliveryAdjust
		}
		return 0, 0
	case domain.OptionTypeCheckbox:
		if val.Checked {
			return opt.PriceAdjust, opt.DeliveryAdjust
		}
	}
	return 0, 0
}

// Reduce applies a single change to a configuration and returns the new one.
// The previous configuration is left untouched.
func Reduce(prev domain.Configuration, ch domain.Change) domain.Configuration {
	next := prev.Clone()
	next[ch.OptionID] = ch.Value
	return next
}

// ApplyChange is the incremental variant of ComputeTotals: instead of
// re-summing everything it subtracts the adjustments implied by the previous
// value of the changed option and adds the new ones. Running it over a
// sequence of changes yields the same totals as a single full recomputation
// on the final configuration.
func ApplyChange(svc *domain.Service, totals Totals, prev domain.Configuration, ch domain.Change) Totals {
	if svc == nil {
		return totals
	}
	opt := svc.FindOption(ch.OptionID)
	if opt == nil {
		return totals
	}
	if old, ok := prev[ch.OptionID]; ok {
		price, days := optionContribution(opt, old)
		totals.Price -= price
		totals.DeliveryDays -= days
	}
	price, days := optionContribution(opt, ch.Value)
	totals.Price += price
	totals.DeliveryDays += days
	return totals
}

// Validate checks that every configuration key corresponds to an option of
// the service. The auxiliary free-text keys are always permitted.
func Validate(svc *domain.Service, cfg domain.Configuration) error {
	if svc == nil {
		if len(cfg) == 0 {
			return nil
		}
		return fmt.Errorf("configuration present without a selected service")
	}
	for key := range cfg {
		if domain.AuxiliaryKey(key) {
			continue
		}
		if svc.FindOption(key) == nil {
			return fmt.Errorf("configuration key %q matches no option of service %q", key, svc.Name)
		}
	}
	return nil
}

// Normalize retags wire values against the service definition: strings keyed
// by a select option become select values, strings on auxiliary keys stay
// text. Unknown keys are left as they arrived for Validate to report.
func Normalize(svc *domain.Service, cfg domain.Configuration) domain.Configuration {
	if svc == nil {
		return cfg.Clone()
	}
	out := cfg.Clone()
	for key, val := range out {
		if val.Kind != domain.ValueText {
			continue
		}
		if opt := svc.FindOption(key); opt != nil && opt.Type == domain.OptionTypeSelect {
			out[key] = domain.SelectValue(val.Str)
		}
	}
	return out
}
