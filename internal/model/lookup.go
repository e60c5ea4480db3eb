package model

// LookupKind names one of the four reference tables a product points at.
// The kinds share a shape but are never interchangeable.
type LookupKind string

const (
	KindCategory LookupKind = "category"
	KindMaterial LookupKind = "material"
	KindColor    LookupKind = "color"
	KindSize     LookupKind = "size"
)

// LookupKinds lists every kind in a stable order.
var LookupKinds = []LookupKind{KindCategory, KindMaterial, KindColor, KindSize}

func (k LookupKind) Table() string {
	switch k {
	case KindCategory:
		return "categories"
	case KindMaterial:
		return "materials"
	case KindColor:
		return "colors"
	case KindSize:
		return "sizes"
	}
	return ""
}

// Label is the display name used in messages and enriched output.
func (k LookupKind) Label() string {
	switch k {
	case KindCategory:
		return "Category"
	case KindMaterial:
		return "Material"
	case KindColor:
		return "Color"
	case KindSize:
		return "Size"
	}
	return string(k)
}

func (k LookupKind) Valid() bool {
	return k.Table() != ""
}

// Lookup is a row of any lookup table; the table is chosen by its kind.
type Lookup struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name" validate:"notblank"`
	Timestamps
}

// LookupRef is the resolved form of a product's foreign key.
type LookupRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// MissingName is shown for references whose target no longer exists.
const MissingName = "N/A"
