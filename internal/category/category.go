package category

// Type tells which side of the ledger a category belongs to.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Category is fixed reference data, immutable at runtime. The set below is
// compiled into the binary; the name doubles as the display label and as the
// value transactions reference.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type Type   `json:"type"`
}

var defaults = []Category{
	{ID: "c1", Name: "مبيعات", Type: TypeIncome},
	{ID: "c2", Name: "استثمار", Type: TypeIncome},
	{ID: "c3", Name: "رواتب", Type: TypeExpense},
	{ID: "c4", Name: "إيجار", Type: TypeExpense},
	{ID: "c5", Name: "مستلزمات مكتبية", Type: TypeExpense},
	{ID: "c6", Name: "صيانة", Type: TypeExpense},
}

// All returns the reference list in its canonical order. Callers receive a
// copy so the reference data stays immutable.
func All() []Category {
	out := make([]Category, len(defaults))
	copy(out, defaults)
	return out
}

// ForType returns the categories selectable for the given transaction type,
// preserving canonical order.
func ForType(t Type) []Category {
	var out []Category
	for _, c := range defaults {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// IsValid reports whether name identifies a category of the given type.
func IsValid(name string, t Type) bool {
	for _, c := range defaults {
		if c.Name == name && c.Type == t {
			return true
		}
	}
	return false
}
