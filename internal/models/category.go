package models

// Category classifies an expense for reporting. The set is fixed;
// anything a receipt reports outside it is stored as CategoryOther.
type Category string

const (
	CategoryMedical      Category = "Medical"
	CategoryDental       Category = "Dental"
	CategoryVision       Category = "Vision"
	CategoryPrescription Category = "Prescription"
	CategoryMentalHealth Category = "Mental Health"
	CategoryOther        Category = "Other"
)

// Categories lists every valid expense category in display order.
var Categories = []Category{
	CategoryMedical,
	CategoryDental,
	CategoryVision,
	CategoryPrescription,
	CategoryMentalHealth,
	CategoryOther,
}

// IsValid reports whether the category is one of the fixed set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the category as stored on ledger rows.
func (c Category) String() string {
	return string(c)
}

// NormalizeCategory maps a raw category string onto the fixed set.
// Matching is exact; empty or unrecognized values become CategoryOther.
func NormalizeCategory(raw string) Category {
	c := Category(raw)
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

// CategoryNames returns the category names as plain strings, in the
// same order as Categories.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}

// Source records how a ledger row was produced.
type Source string

const (
	// SourceManual marks rows entered by hand through the add command.
	SourceManual Source = "manual"
	// SourceScan marks rows produced by the receipt extraction pipeline.
	SourceScan Source = "scan"
)

// IsValid reports whether the source is one of the known values.
func (s Source) IsValid() bool {
	return s == SourceManual || s == SourceScan
}

// String returns the source as stored on ledger rows.
func (s Source) String() string {
	return string(s)
}
