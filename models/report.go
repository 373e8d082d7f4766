package models

import "strconv"

// Kind tells which member of a Value is set.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindInt
	KindFloat
)

// Value is a single report cell.
type Value struct {
	Kind  Kind
	Str   string
	Int   int
	Float float64
}

func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

func IntValue(n int) Value { return Value{Kind: KindInt, Int: n} }

func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Format renders the value the way the output file stores it: floats with
// five decimals, missing values as an empty cell.
func (v Value) Format() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindFloat:
		if IsNull(v.Float) {
			return ""
		}
		return strconv.FormatFloat(v.Float, 'f', 5, 64)
	}
	return ""
}

// Field maps a display label onto a joined-table column.
type Field struct {
	Label  string
	Column string
}

// TopSlots is the number of country slots in every top-k row.
const TopSlots = 5

// Slot is one ranked country inside a TopRow. Values follow TopReport.Fields.
// An unfilled slot has no values.
type Slot struct {
	Values []Value
}

// Filled reports whether a country occupies the slot.
func (s Slot) Filled() bool { return len(s.Values) > 0 }

// TopRow holds the ranked countries of one year, best first.
type TopRow struct {
	Year  int
	Slots [TopSlots]Slot
}

// TopReport is the per-year ranking of the TopSlots highest rows by SortBy.
type TopReport struct {
	Fields []Field
	SortBy string
	Rows   []TopRow
}

// SlotName is the group label of slot i (zero-based) in headers.
func SlotName(i int) string {
	return "Country " + strconv.Itoa(i+1)
}

// ChangeReport holds the countries with the largest growth and decrease of
// emissions per capita between StartYear and EndYear.
type ChangeReport struct {
	StartYear    int
	EndYear      int
	MaxCountries []string
	MaxDelta     float64
	MinCountries []string
	MinDelta     float64
}

// Report is everything the pipeline produces for one run.
type Report struct {
	Years     []int
	Excluded  []string
	Joined    *JoinedTable
	Emissions *TopReport
	GDP       *TopReport
	// Changes is nil when fewer than two years are available.
	Changes *ChangeReport
}
