package types

import "fmt"

// Category classifies an item. The set is closed; labels are the canonical
// serialized form used at the storage and wire boundaries.
type Category int

// Item categories.
const (
	CategoryAntique Category = iota
	CategoryBook
	CategoryDecor
	CategoryElectronicDevice
	CategoryFurniture
	CategoryHouseholdItem
	CategoryKitchenware
	CategoryMineralSpecimen
	CategoryTool
	CategoryWood
	CategoryOther
)

var categoryLabels = [...]string{
	CategoryAntique:          "Antique",
	CategoryBook:             "Book",
	CategoryDecor:            "Decor",
	CategoryElectronicDevice: "ElectronicDevice",
	CategoryFurniture:        "Furniture",
	CategoryHouseholdItem:    "HouseholdItem",
	CategoryKitchenware:      "Kitchenware",
	CategoryMineralSpecimen:  "MineralSpecimen",
	CategoryTool:             "Tool",
	CategoryWood:             "Wood",
	CategoryOther:            "Other",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryLabels))
	for i := range categoryLabels {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(categoryLabels)
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryLabels[c]
}

// ParseCategory returns the category whose label is exactly s.
func ParseCategory(s string) (Category, error) {
	for i, label := range categoryLabels {
		if label == s {
			return Category(i), nil
		}
	}
	return 0, ErrInvalidCategory
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	v, err := ParseCategory(string(text))
	if err != nil {
		return fmt.Errorf("%w: %q", err, text)
	}
	*c = v
	return nil
}

// Action records what the owner intends to do with an item.
type Action int

// Item actions.
const (
	ActionKeep Action = iota
	ActionSell
)

var actionLabels = [...]string{
	ActionKeep: "Keep",
	ActionSell: "Sell",
}

// Actions returns every action in declaration order.
func Actions() []Action {
	return []Action{ActionKeep, ActionSell}
}

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool {
	return a >= 0 && int(a) < len(actionLabels)
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionLabels[a]
}

// ParseAction returns the action whose label is exactly s.
func ParseAction(s string) (Action, error) {
	for i, label := range actionLabels {
		if label == s {
			return Action(i), nil
		}
	}
	return 0, ErrInvalidAction
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, ErrInvalidAction
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	v, err := ParseAction(string(text))
	if err != nil {
		return fmt.Errorf("%w: %q", err, text)
	}
	*a = v
	return nil
}
