package types

import "sort"

// ItemFilter is a sparse set of criteria; nil means "no constraint on that
// field". All set criteria must hold (AND). Substring criteria are
// case-sensitive; range criteria are inclusive.
//
// Deleted left nil excludes soft-deleted items, the same policy as
// Catalog.List.
type ItemFilter struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Creator     *string `json:"creator,omitempty"`
	Provenance  *string `json:"provenance,omitempty"`

	Category *Category `json:"category,omitempty"`
	Action   *Action   `json:"action,omitempty"`
	Working  *bool     `json:"working,omitempty"`
	Deleted  *bool     `json:"deleted,omitempty"`

	DateAddedMin    *Date `json:"date_added_min,omitempty"`
	DateAddedMax    *Date `json:"date_added_max,omitempty"`
	LastUpdatedMin  *Date `json:"last_updated_min,omitempty"`
	LastUpdatedMax  *Date `json:"last_updated_max,omitempty"`
	DateAcquiredMin *Date `json:"date_acquired_min,omitempty"`
	DateAcquiredMax *Date `json:"date_acquired_max,omitempty"`

	AgeYearsMin       *uint32  `json:"age_years_min,omitempty"`
	AgeYearsMax       *uint32  `json:"age_years_max,omitempty"`
	PurchasePriceMin  *float64 `json:"purchase_price_min,omitempty"`
	PurchasePriceMax  *float64 `json:"purchase_price_max,omitempty"`
	EstimatedValueMin *float64 `json:"estimated_value_min,omitempty"`
	EstimatedValueMax *float64 `json:"estimated_value_max,omitempty"`
}

type criterionParser func(f *ItemFilter, raw string) error

func criterion[T any](parse func(string) (T, error), target func(*ItemFilter) **T) criterionParser {
	return func(f *ItemFilter, raw string) error {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		*target(f) = &v
		return nil
	}
}

// filterKeys lists the recognized filter keys in documentation order.
var filterKeys = []string{
	"name", "description", "creator", "provenance",
	"category", "action", "working", "deleted",
	"date_added_min", "date_added_max",
	"last_updated_min", "last_updated_max",
	"date_acquired_min", "date_acquired_max",
	"age_years_min", "age_years_max",
	"purchase_price_min", "purchase_price_max",
	"estimated_value_min", "estimated_value_max",
}

var filterCriteria = map[string]criterionParser{
	"name":        criterion(parseText, func(f *ItemFilter) **string { return &f.Name }),
	"description": criterion(parseText, func(f *ItemFilter) **string { return &f.Description }),
	"creator":     criterion(parseText, func(f *ItemFilter) **string { return &f.Creator }),
	"provenance":  criterion(parseText, func(f *ItemFilter) **string { return &f.Provenance }),

	"category": criterion(ParseCategory, func(f *ItemFilter) **Category { return &f.Category }),
	"action":   criterion(ParseAction, func(f *ItemFilter) **Action { return &f.Action }),
	"working":  criterion(parseBool, func(f *ItemFilter) **bool { return &f.Working }),
	"deleted":  criterion(parseBool, func(f *ItemFilter) **bool { return &f.Deleted }),

	"date_added_min":    criterion(ParseDate, func(f *ItemFilter) **Date { return &f.DateAddedMin }),
	"date_added_max":    criterion(ParseDate, func(f *ItemFilter) **Date { return &f.DateAddedMax }),
	"last_updated_min":  criterion(ParseDate, func(f *ItemFilter) **Date { return &f.LastUpdatedMin }),
	"last_updated_max":  criterion(ParseDate, func(f *ItemFilter) **Date { return &f.LastUpdatedMax }),
	"date_acquired_min": criterion(ParseDate, func(f *ItemFilter) **Date { return &f.DateAcquiredMin }),
	"date_acquired_max": criterion(ParseDate, func(f *ItemFilter) **Date { return &f.DateAcquiredMax }),

	"age_years_min":       criterion(parseUint32, func(f *ItemFilter) **uint32 { return &f.AgeYearsMin }),
	"age_years_max":       criterion(parseUint32, func(f *ItemFilter) **uint32 { return &f.AgeYearsMax }),
	"purchase_price_min":  criterion(parseFloat, func(f *ItemFilter) **float64 { return &f.PurchasePriceMin }),
	"purchase_price_max":  criterion(parseFloat, func(f *ItemFilter) **float64 { return &f.PurchasePriceMax }),
	"estimated_value_min": criterion(parseFloat, func(f *ItemFilter) **float64 { return &f.EstimatedValueMin }),
	"estimated_value_max": criterion(parseFloat, func(f *ItemFilter) **float64 { return &f.EstimatedValueMax }),
}

// FilterKeys returns the recognized filter keys.
func FilterKeys() []string {
	out := make([]string, len(filterKeys))
	copy(out, filterKeys)
	return out
}

// ParseFilter builds an ItemFilter from string criteria such as CLI flags
// or URL query parameters. Empty values are skipped, so a blank form field
// imposes no constraint. Unrecognized keys return *UnknownFieldError and
// unparsable values return *CoercionError; keys are checked in sorted order.
func ParseFilter(values map[string]string) (ItemFilter, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var f ItemFilter
	for _, key := range keys {
		parse, ok := filterCriteria[key]
		if !ok {
			return ItemFilter{}, &UnknownFieldError{Field: key}
		}
		raw := values[key]
		if raw == "" {
			continue
		}
		if err := parse(&f, raw); err != nil {
			return ItemFilter{}, &CoercionError{Field: key, Value: raw, Err: err}
		}
	}
	return f, nil
}
