package lot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/lot"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la agrupación por lote: derivación de la llave, fusión de la vista
// virtual y editabilidad del batch.
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchKey_SufijoDeModeloMixto(t *testing.T) {
	assert.Equal(t, "2025-010", lot.BatchKey("2025-010-A"), "el sufijo de modelo debe descartarse")
	assert.Equal(t, "2025-010", lot.BatchKey("2025-010-B"))
	assert.Equal(t, "2025-010", lot.BatchKey("2025-010-A-EXTRA"), "solo cuentan los dos primeros tokens")
}

func TestBatchKey_LoteSimpleEsSuPropiaLlave(t *testing.T) {
	assert.Equal(t, "2025-010", lot.BatchKey("2025-010"))
	assert.Equal(t, "LOTE99", lot.BatchKey("LOTE99"), "un lote sin guiones se agrupa solo")
}

func TestGroup_HermanasCompartenLlave(t *testing.T) {
	orders := []*entity.ProductionOrder{
		{ID: "a", LotNumber: "2025-010-A"},
		{ID: "b", LotNumber: "2025-010-B"},
		{ID: "c", LotNumber: "2025-011"},
	}

	groups := lot.Group(orders)
	require.Len(t, groups, 2)
	assert.Len(t, groups["2025-010"], 2, "las OPs hermanas deben caer en el mismo batch")
	assert.Len(t, groups["2025-011"], 1)
}

func TestMerge_SumaCantidadesYConcatenaItems(t *testing.T) {
	orders := []*entity.ProductionOrder{
		{
			ID: "a", LotNumber: "2025-010-A", Status: entity.StatusPlanned, QuantityTotal: 60,
			Items: []entity.OrderItem{{Color: "Rojo", Size: "S", Quantity: 60}},
		},
		{
			ID: "b", LotNumber: "2025-010-B", Status: entity.StatusPlanned, QuantityTotal: 40,
			Items: []entity.OrderItem{{Color: "Azul", Size: "M", Quantity: 40}},
		},
	}

	b := lot.Merge("2025-010", orders)
	assert.Equal(t, 100, b.QuantityTotal, "la cantidad del batch es la suma de sus OPs")
	assert.Len(t, b.Items, 2)
	assert.True(t, b.Editable)
}

func TestMerge_EventosEnOrdenCronologico(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []*entity.ProductionOrder{
		{
			ID: "a", LotNumber: "2025-010-A", Status: entity.StatusPlanned,
			Events: []entity.OrderEvent{
				{Action: "tercero", Date: base.Add(2 * time.Hour)},
				{Action: "primero", Date: base},
			},
		},
		{
			ID: "b", LotNumber: "2025-010-B", Status: entity.StatusPlanned,
			Events: []entity.OrderEvent{
				{Action: "segundo", Date: base.Add(time.Hour)},
			},
		},
	}

	b := lot.Merge("2025-010", orders)
	require.Len(t, b.Events, 3)
	assert.Equal(t, "primero", b.Events[0].Action)
	assert.Equal(t, "segundo", b.Events[1].Action)
	assert.Equal(t, "tercero", b.Events[2].Action)
}

func TestEditable_SoloConTodasEnDraftOPlanned(t *testing.T) {
	editable := []*entity.ProductionOrder{
		{Status: entity.StatusDraft},
		{Status: entity.StatusPlanned},
	}
	assert.True(t, lot.Editable(editable))

	// Una sola hermana en corte congela el batch completo.
	mixed := []*entity.ProductionOrder{
		{Status: entity.StatusPlanned},
		{Status: entity.StatusCutting},
	}
	assert.False(t, lot.Editable(mixed))

	assert.False(t, lot.Editable(nil), "un batch vacío no es editable")
}

func TestIsBatchShapedID(t *testing.T) {
	assert.True(t, lot.IsBatchShapedID("batch:2025-010"))
	assert.False(t, lot.IsBatchShapedID("2025-010"))
	assert.False(t, lot.IsBatchShapedID(""))
}
