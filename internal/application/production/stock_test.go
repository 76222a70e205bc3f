package production_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Confeccion-api/internal/application/production"
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la materialización de stock y del caso de uso de stock terminado.
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterializeStock_UnaFilaPorPar(t *testing.T) {
	order := &entity.ProductionOrder{
		ID:        "op-1",
		ProductID: "prod-1",
		Warehouse: "PRINCIPAL",
		CostUnit:  dec("12000"),
		PriceUnit: dec("35000"),
		Items: []entity.OrderItem{
			{Color: "Rojo", Size: "S", Quantity: 60},
			{Color: "Azul", Size: "M", Quantity: 40},
		},
	}

	now := time.Now()
	records := production.MaterializeStock(order, now)
	require.Len(t, records, 2)

	for _, r := range records {
		assert.Equal(t, "op-1", r.OrderID)
		assert.Equal(t, "PRINCIPAL", r.Warehouse)
		assert.Equal(t, entity.StockStatusAvailable, r.Status)
		assert.True(t, dec("12000").Equal(r.Cost), "el costo es el snapshot de la OP")
		assert.True(t, dec("35000").Equal(r.Price))
		assert.Equal(t, now, r.CreatedAt)
		assert.NotEmpty(t, r.ID)
	}
	assert.Equal(t, 60, records[0].Quantity, "las cantidades se copian tal cual, sin reagrupar")
	assert.Equal(t, 40, records[1].Quantity)
}

func TestMaterializeStock_PrefiereElDesgloseEmpacado(t *testing.T) {
	order := &entity.ProductionOrder{
		ID:    "op-1",
		Items: []entity.OrderItem{{Color: "Rojo", Size: "S", Quantity: 100}},
		PackingDetails: &entity.PackingDetails{
			Items: []entity.OrderItem{{Color: "Rojo", Size: "S", Quantity: 97}},
		},
	}

	records := production.MaterializeStock(order, time.Now())
	require.Len(t, records, 1)
	assert.Equal(t, 97, records[0].Quantity,
		"con desglose empacado registrado, ese es el que manda")
}

func TestMaterializeStock_OmiteCantidadesNoPositivas(t *testing.T) {
	order := &entity.ProductionOrder{
		ID: "op-1",
		Items: []entity.OrderItem{
			{Color: "Rojo", Size: "S", Quantity: 10},
			{Color: "Azul", Size: "M", Quantity: 0},
		},
	}

	records := production.MaterializeStock(order, time.Now())
	assert.Len(t, records, 1)
}

func TestMarkExported_SoloDesdeAvailable(t *testing.T) {
	stock := newFakeStockRepo()
	require.NoError(t, stock.CreateBatch([]*entity.FinishedProductStock{
		{ID: "st-1", OrderID: "op-1", Status: entity.StockStatusAvailable, Quantity: 10},
	}))
	uc := production.NewStockUseCase(stock)

	resp, err := uc.MarkExported("st-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusExported, resp.Status)

	// Exportar dos veces es ilegal: la fila ya salió de bodega.
	_, err = uc.MarkExported("st-1")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestMarkExported_FilaInexistente(t *testing.T) {
	uc := production.NewStockUseCase(newFakeStockRepo())
	_, err := uc.MarkExported("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockList_FiltraPorEstado(t *testing.T) {
	stock := newFakeStockRepo()
	require.NoError(t, stock.CreateBatch([]*entity.FinishedProductStock{
		{ID: "st-1", ProductID: "prod-1", Status: entity.StockStatusAvailable, Quantity: 10},
		{ID: "st-2", ProductID: "prod-1", Status: entity.StockStatusExported, Quantity: 5},
	}))
	uc := production.NewStockUseCase(stock)

	out, err := uc.List(repository.StockFilter{Status: entity.StockStatusAvailable})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "st-1", out[0].ID)
}
