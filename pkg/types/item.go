package types

import "encoding/json"

// Item is one physical-collection record.
//
// Optional attributes are pointers; nil means the value is unknown. The
// validate tags are read by Validate.
type Item struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name" validate:"notblank,max=50"`
	Description string   `json:"description" validate:"notblank"`
	Category    Category `json:"category" validate:"enum"`
	Action      Action   `json:"action" validate:"enum"`
	DateAdded   Date     `json:"date_added" validate:"omitempty,calendardate"`
	LastUpdated Date     `json:"last_updated" validate:"omitempty,calendardate"`
	Deleted     bool     `json:"deleted"`

	AgeYears       *uint32  `json:"age_years"`
	DateAcquired   *Date    `json:"date_acquired" validate:"omitnil,calendardate"`
	PurchasePrice  *float64 `json:"purchase_price" validate:"omitempty,gte=0"`
	EstimatedValue *float64 `json:"estimated_value" validate:"omitempty,gte=0"`
	Creator        *string  `json:"creator"`
	Working        *bool    `json:"working"`
	Provenance     *string  `json:"provenance"`
}

// UnmarshalJSON decodes an item, treating an empty date_acquired as unknown
// rather than as a zero date.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	p := plain(i.Clone())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.DateAcquired != nil && p.DateAcquired.IsZero() {
		p.DateAcquired = nil
	}
	*i = Item(p)
	return nil
}

// Clone returns a deep copy of the item; optional attributes do not share
// storage with the original.
func (i Item) Clone() Item {
	out := i
	out.AgeYears = clonePtr(i.AgeYears)
	out.DateAcquired = clonePtr(i.DateAcquired)
	out.PurchasePrice = clonePtr(i.PurchasePrice)
	out.EstimatedValue = clonePtr(i.EstimatedValue)
	out.Creator = clonePtr(i.Creator)
	out.Working = clonePtr(i.Working)
	out.Provenance = clonePtr(i.Provenance)
	return out
}

// Ptr returns a pointer to v. It is a convenience for filling optional
// attributes and filter criteria.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
