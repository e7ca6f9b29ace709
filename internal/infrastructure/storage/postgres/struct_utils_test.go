package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vendorgate/internal/core/entity"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
)

type mockCatalog struct {
	entity.BaseCatalog
	Code      string          `db:"code" json:"code"`
	Name      string          `db:"name" json:"name"`
	UnitPrice types.NullMoney `db:"unit_price" json:"unitPrice"`
	Skipped   string          `db:"-"`
	Untagged  string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "deletion_mark", "version", "code", "name", "unit_price"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMapFlattensEmbedded(t *testing.T) {
	price := types.SomeMoney(types.MustMoney("9.99"))
	cat := mockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code:      "PRD-00001",
		Name:      "Cola 12oz",
		UnitPrice: price,
		Skipped:   "never stored",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "PRD-00001", m["code"])
	assert.Equal(t, "Cola 12oz", m["name"])
	assert.Equal(t, price, m["unit_price"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 6)
}

func TestStructToMapPointerAndNonStruct(t *testing.T) {
	cat := &mockCatalog{Code: "X"}
	m := StructToMap(cat)
	assert.Equal(t, "X", m["code"])

	assert.Nil(t, StructToMap(42))
}
