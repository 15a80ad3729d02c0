package domain

import "time"

// OptionType discriminates the two kinds of configurable options
type OptionType string

const (
	OptionTypeSelect   OptionType = "select"
	OptionTypeCheckbox OptionType = "checkbox"
)

// Step layout hints used by clients when rendering a configuration step
const (
	StepLayoutDefault      = "default"
	StepLayoutGrid         = "grid"
	StepLayoutCheckboxGrid = "checkbox-grid"
)

// Choice is one selectable value of a select option. Adjustments are signed
// and default to zero.
type Choice struct {
	Value          string `json:"value"`
	Label          string `json:"label"`
	PriceAdjust    int64  `json:"priceAdjustment,omitempty"`
	DeliveryAdjust int    `json:"deliveryTimeAdjustment,omitempty"`
}

// Option is a single configurable choice point within a step.
// Select options carry Choices; checkbox options carry their own fixed
// adjustment pair, applied only while checked.
type Option struct {
	ID          string     `json:"id"`
	Type        OptionType `json:"type"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`

	Choices []Choice `json:"choices,omitempty"`

	PriceAdjust    int64 `json:"priceAdjustment,omitempty"`
	DeliveryAdjust int   `json:"deliveryTimeAdjustment,omitempty"`
}

// Step is a titled grouping of options within a service
type Step struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Layout  string   `json:"layout,omitempty"`
	Options []Option `json:"options"`
}

// Service statuses
const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
	ServiceStatusArchived = "archived"
)

// Service represents a sellable offering. Prices are whole currency-agnostic
// units; delivery time is in days. Created and edited by administrators,
// read-only to the ordering flow.
type Service struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Description      string    `json:"description,omitempty"`
	BasePrice        int64     `json:"basePrice"`
	DeliveryDays     int       `json:"deliveryTime"`
	Steps            []Step    `json:"steps"`
	Features         []string  `json:"features,omitempty"`
	Benefits         []string  `json:"benefits,omitempty"`
	Scope            []string  `json:"scope,omitempty"`
	Category         string    `json:"category,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}

// FindOption returns the option with the given id, searching every step
func (s *Service) FindOption(optionID string) *Option {
	for i := range s.Steps {
		for j := range s.Steps[i].Options {
			if s.Steps[i].Options[j].ID == optionID {
				return &s.Steps[i].Options[j]
			}
		}
	}
	return nil
}

// FindChoice returns the choice of a select option whose value matches
func (o *Option) FindChoice(value string) *Choice {
	for i := range o.Choices {
		if o.Choices[i].Value == value {
			return &o.Choices[i]
		}
	}
	return nil
}
