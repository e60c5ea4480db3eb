package model

import "github.com/shopspring/decimal"

// Price columns are decimal(10,2): two fractional digits, below 10^8.
const PriceScale = 2

var PriceCeiling = decimal.New(1, 8)

type Product struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string           `gorm:"type:varchar(255);not null" json:"name"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	OldPrice      *decimal.Decimal `gorm:"type:decimal(10,2)" json:"oldPrice"`
	Quantity      int              `gorm:"not null;default:0" json:"quantity"`
	Image         *string          `gorm:"type:varchar(512)" json:"image"`
	Description   *string          `gorm:"type:text" json:"description"`
	Specification *string          `gorm:"type:text" json:"specification"`

	// References are plain columns without FK constraints; deleting a
	// lookup row leaves products pointing at it.
	CategoryID uint  `gorm:"not null;index" json:"categoryId"`
	MaterialID *uint `gorm:"index" json:"materialId"`
	ColorID    *uint `gorm:"index" json:"colorId"`
	SizeID     *uint `gorm:"index" json:"sizeId"`

	Timestamps
}

func (Product) TableName() string {
	return "products"
}

// Ref returns the product's reference id for a lookup kind, nil when unset.
func (p *Product) Ref(kind LookupKind) *uint {
	switch kind {
	case KindCategory:
		id := p.CategoryID
		if id == 0 {
			return nil
		}
		return &id
	case KindMaterial:
		return p.MaterialID
	case KindColor:
		return p.ColorID
	case KindSize:
		return p.SizeID
	}
	return nil
}

// EnrichedProduct is a product with its references resolved to names.
type EnrichedProduct struct {
	Product
	Category *LookupRef `json:"Category"`
	Material *LookupRef `json:"Material"`
	Color    *LookupRef `json:"Color"`
	Size     *LookupRef `json:"Size"`
}

// SetRef attaches a resolved reference for the given kind.
func (e *EnrichedProduct) SetRef(kind LookupKind, ref *LookupRef) {
	switch kind {
	case KindCategory:
		e.Category = ref
	case KindMaterial:
		e.Material = ref
	case KindColor:
		e.Color = ref
	case KindSize:
		e.Size = ref
	}
}
