package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string           `json:"name" validate:"notblank"`
	Price    decimal.Decimal  `json:"price" validate:"gt=0"`
	OldPrice *decimal.Decimal `json:"oldPrice" validate:"omitempty,gte=0"`
	Quantity *int             `json:"quantity" validate:"required,gte=0"`
}

func intPtr(v int) *int { return &v }

func TestValidateStructPasses(t *testing.T) {
	old := decimal.RequireFromString("12.50")
	errs := ValidateStruct(&sample{
		Name:     "Widget",
		Price:    decimal.RequireFromString("9.99"),
		OldPrice: &old,
		Quantity: intPtr(0),
	})
	assert.Empty(t, errs)
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	errs := ValidateStruct(&sample{
		Name:     "   ",
		Price:    decimal.Zero,
		OldPrice: &negative,
	})
	require.Len(t, errs, 4)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.FailedField] = e.Tag
	}
	assert.Equal(t, "notblank", fields["name"])
	assert.Equal(t, "gt", fields["price"])
	assert.Equal(t, "gte", fields["oldPrice"])
	assert.Equal(t, "required", fields["quantity"])
}
