package types

import (
	"fmt"
	"math"
	"strconv"
)

// FieldKind is the value domain of an item field.
type FieldKind int

// Field kinds. The typed value of each kind, as produced by Field.Parse and
// consumed by Field.Set, is noted alongside.
const (
	KindText     FieldKind = iota // string
	KindCategory                  // Category
	KindAction                    // Action
	KindBool                      // bool
	KindDate                      // Date
	KindInteger                   // uint32
	KindFloat                     // float64
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCategory:
		return "category"
	case KindAction:
		return "action"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Field describes one persisted item attribute other than the ID. The
// field table is the single source for update coercion, filter parsing,
// schema generation and export column order.
type Field struct {
	Name     string
	Kind     FieldKind
	Nullable bool // typed value may be nil (stored as NULL)
	Settable bool // may be named in an update request

	get func(*Item) any
	set func(*Item, any)
}

// Get returns the typed value of f in item, or nil for an unset optional
// attribute.
func (f Field) Get(item *Item) any { return f.get(item) }

// Set stores a typed value, as returned by Parse, into item. A nil value
// clears an optional attribute.
func (f Field) Set(item *Item, v any) { f.set(item, v) }

// Parse converts a raw string into the field's typed value. For nullable
// fields the empty string parses to nil. Parse establishes the type only;
// business rules such as non-negative prices are left to Validate.
func (f Field) Parse(raw string) (any, error) {
	if f.Nullable && raw == "" {
		return nil, nil
	}
	switch f.Kind {
	case KindText:
		return raw, nil
	case KindCategory:
		return ParseCategory(raw)
	case KindAction:
		return ParseAction(raw)
	case KindBool:
		return parseBool(raw)
	case KindDate:
		return ParseDate(raw)
	case KindInteger:
		return parseUint32(raw)
	case KindFloat:
		return parseFloat(raw)
	default:
		return nil, fmt.Errorf("unsupported field kind %v", f.Kind)
	}
}

// fieldTable lists the item fields in Item declaration order.
var fieldTable = []Field{
	{
		Name: "name", Kind: KindText, Settable: true,
		get: func(i *Item) any { return i.Name },
		set: func(i *Item, v any) { i.Name = v.(string) },
	},
	{
		Name: "description", Kind: KindText, Settable: true,
		get: func(i *Item) any { return i.Description },
		set: func(i *Item, v any) { i.Description = v.(string) },
	},
	{
		Name: "category", Kind: KindCategory, Settable: true,
		get: func(i *Item) any { return i.Category },
		set: func(i *Item, v any) { i.Category = v.(Category) },
	},
	{
		Name: "action", Kind: KindAction, Settable: true,
		get: func(i *Item) any { return i.Action },
		set: func(i *Item, v any) { i.Action = v.(Action) },
	},
	{
		Name: "date_added", Kind: KindDate, Settable: true,
		get: func(i *Item) any { return i.DateAdded },
		set: func(i *Item, v any) { i.DateAdded = v.(Date) },
	},
	{
		// Stamped by the backend on every write.
		Name: "last_updated", Kind: KindDate,
		get: func(i *Item) any { return i.LastUpdated },
		set: func(i *Item, v any) { i.LastUpdated = v.(Date) },
	},
	{
		Name: "deleted", Kind: KindBool, Settable: true,
		get: func(i *Item) any { return i.Deleted },
		set: func(i *Item, v any) { i.Deleted = v.(bool) },
	},
	{
		Name: "age_years", Kind: KindInteger, Nullable: true, Settable: true,
		get: func(i *Item) any { return optional(i.AgeYears) },
		set: func(i *Item, v any) { i.AgeYears = pointer[uint32](v) },
	},
	{
		Name: "date_acquired", Kind: KindDate, Nullable: true, Settable: true,
		get: func(i *Item) any { return optional(i.DateAcquired) },
		set: func(i *Item, v any) { i.DateAcquired = pointer[Date](v) },
	},
	{
		Name: "purchase_price", Kind: KindFloat, Nullable: true, Settable: true,
		get: func(i *Item) any { return optional(i.PurchasePrice) },
		set: func(i *Item, v any) { i.PurchasePrice = pointer[float64](v) },
	},
	{
		Name: "estimated_value", Kind: KindFloat, Nullable: true, Settable: true,
		get: func(i *Item) any { return optional(i.EstimatedValue) },
		set: func(i *Item, v any) { i.EstimatedValue = pointer[float64](v) },
	},
	{
		Name: "creator", Kind: KindText, Nullable: true, Settable: true,
		get: func(i *Item) any { return optional(i.Creator) },
		set: func(i *Item, v any) { i.Creator = pointer[string](v) },
	},
	{
		Name: "working", Kind: KindBool, Nullable: true, Settable: true,
		get: func(i *Item) any { return optional(i.Working) },
		set: func(i *Item, v any) { i.Working = pointer[bool](v) },
	},
	{
		Name: "provenance", Kind: KindText, Nullable: true, Settable: true,
		get: func(i *Item) any { return optional(i.Provenance) },
		set: func(i *Item, v any) { i.Provenance = pointer[string](v) },
	},
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fieldTable))
	for i, f := range fieldTable {
		m[f.Name] = i
	}
	return m
}()

// Fields returns the field table in Item declaration order. The ID is not
// part of the table.
func Fields() []Field {
	out := make([]Field, len(fieldTable))
	copy(out, fieldTable)
	return out
}

// LookupField returns the field with the given name.
func LookupField(name string) (Field, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return fieldTable[i], true
}

// CoerceField resolves name against the settable fields and parses raw into
// the field's typed value. It returns *UnknownFieldError for names that are
// not settable and *CoercionError for values that do not parse.
func CoerceField(name, raw string) (any, error) {
	f, ok := LookupField(name)
	if !ok || !f.Settable {
		return nil, &UnknownFieldError{Field: name}
	}
	v, err := f.Parse(raw)
	if err != nil {
		return nil, &CoercionError{Field: name, Value: raw, Err: err}
	}
	return v, nil
}

func parseBool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ErrInvalidBool
	}
}

func parseUint32(raw string) (uint32, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return uint32(n), nil
}

func parseFloat(raw string) (float64, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

func parseText(raw string) (string, error) { return raw, nil }

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func pointer[T any](v any) *T {
	if v == nil {
		return nil
	}
	t := v.(T)
	return &t
}
