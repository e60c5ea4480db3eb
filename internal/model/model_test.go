package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKindTables(t *testing.T) {
	want := map[LookupKind]string{
		KindCategory: "categories",
		KindMaterial: "materials",
		KindColor:    "colors",
		KindSize:     "sizes",
	}
	for _, kind := range LookupKinds {
		assert.Equal(t, want[kind], kind.Table())
		assert.True(t, kind.Valid())
	}
	assert.False(t, LookupKind("brand").Valid())
	assert.Equal(t, "Color", KindColor.Label())
}

func TestProductRef(t *testing.T) {
	color := uint(4)
	p := Product{CategoryID: 2, ColorID: &color}

	require.NotNil(t, p.Ref(KindCategory))
	assert.EqualValues(t, 2, *p.Ref(KindCategory))
	assert.Nil(t, p.Ref(KindMaterial))
	assert.EqualValues(t, 4, *p.Ref(KindColor))

	p.CategoryID = 0
	assert.Nil(t, p.Ref(KindCategory))
}

func TestEnrichedProductJSON(t *testing.T) {
	e := EnrichedProduct{Product: Product{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99"), CategoryID: 1}}
	e.SetRef(KindCategory, &LookupRef{ID: 1, Name: "Electronics"})

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Widget", out["name"])
	assert.EqualValues(t, 1, out["categoryId"])
	assert.Equal(t, "Electronics", out["Category"].(map[string]any)["name"])
	assert.Nil(t, out["Material"])
}

func TestTouch(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	var ts Timestamps
	ts.Touch(first)
	ts.Touch(later)

	assert.Equal(t, first, ts.CreatedAt)
	assert.Equal(t, later, ts.UpdatedAt)
}
