package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/application/production"
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del envío de tacos: commit directo, compuerta de sobreproducción con
// autorización en la misma llamada y reinicio del corte.
// ──────────────────────────────────────────────────────────────────────────────

// seedOrder OP de 100 piezas (Rojo/Azul × S/M, 25 por par) guardada en el fake.
func seedOrder(t *testing.T, repo *fakeOrderRepo, status string) *entity.ProductionOrder {
	t.Helper()
	order := &entity.ProductionOrder{
		ID:            "op-1",
		LotNumber:     "2025-010",
		ProductID:     "prod-1",
		ProductName:   "Camiseta Básica",
		Status:        status,
		QuantityTotal: 100,
		Items: []entity.OrderItem{
			{Color: "Rojo", Size: "S", Quantity: 25},
			{Color: "Rojo", Size: "M", Quantity: 25},
			{Color: "Azul", Size: "S", Quantity: 25},
			{Color: "Azul", Size: "M", Quantity: 25},
		},
		Version: 1,
	}
	require.NoError(t, repo.Create(order))
	return order
}

func itemsSum(o *entity.ProductionOrder) int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}

func TestSubmitJob_TacoDentroDeLaMetaSeComete(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusPlanned)
	uc := production.NewCuttingUseCase(repo)

	// (1+2) × (10+10) = 60 piezas, ningún par excede.
	resp, err := uc.SubmitJob("op-1", dto.SubmitCuttingJobRequest{
		Matrix: []entity.MatrixRatio{{Size: "S", Ratio: 1}, {Size: "M", Ratio: 2}},
		Layers: []entity.LayerDefinition{{Color: "Rojo", Layers: 10}, {Color: "Azul", Layers: 10}},
	}, "cortador1")
	require.NoError(t, err)

	assert.True(t, resp.Accepted)
	assert.False(t, resp.RequiresAuthorization)
	assert.Equal(t, 60, resp.CutQuantity)
	assert.Equal(t, 100, resp.QuantityTotal)
	assert.False(t, resp.CuttingComplete, "60 de 100 no completa el corte")

	stored, _ := repo.GetByID("op-1")
	assert.Equal(t, entity.StatusCutting, stored.Status, "el primer taco arranca el corte")
	assert.Equal(t, 60, stored.CutQuantity())
	require.Len(t, stored.CuttingDetails.Jobs, 1)
	assert.Equal(t, 60, stored.CuttingDetails.Jobs[0].TotalPieces,
		"el total del taco siempre se recalcula, nunca se confía en el caller")
	assert.Equal(t, int64(2), stored.Version)
}

func TestSubmitJob_ExcesoSinAutorizacionNoMutaNada(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusPlanned)
	uc := production.NewCuttingUseCase(repo)

	// Rojo/S quedaría en 26 contra 25.
	resp, err := uc.SubmitJob("op-1", dto.SubmitCuttingJobRequest{
		Matrix: []entity.MatrixRatio{{Size: "S", Ratio: 1}},
		Layers: []entity.LayerDefinition{{Color: "Rojo", Layers: 26}},
	}, "cortador1")
	require.NoError(t, err, "la compuerta de sobreproducción no es un error")

	assert.False(t, resp.Accepted)
	assert.True(t, resp.RequiresAuthorization)
	require.Len(t, resp.ExceedingPairs, 1)
	assert.Equal(t, 1, resp.ExceedingPairs[0].Diff)

	stored, _ := repo.GetByID("op-1")
	assert.Equal(t, entity.StatusPlanned, stored.Status, "el rechazo no debe mutar la OP")
	assert.Zero(t, stored.CutQuantity())
	assert.Equal(t, 100, stored.QuantityTotal)
	assert.Equal(t, int64(1), stored.Version, "sin mutación no hay nueva versión")
}

func TestSubmitJob_ExcesoAutorizadoSubeLaDemanda(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusPlanned)
	uc := production.NewCuttingUseCase(repo)

	// 26 de Rojo/S con autorización: la demanda del par sube a 26 y el total a 101.
	resp, err := uc.SubmitJob("op-1", dto.SubmitCuttingJobRequest{
		Matrix:       []entity.MatrixRatio{{Size: "S", Ratio: 1}},
		Layers:       []entity.LayerDefinition{{Color: "Rojo", Layers: 26}},
		AuthorizedBy: "supervisora",
	}, "cortador1")
	require.NoError(t, err)

	assert.True(t, resp.Accepted)
	assert.False(t, resp.RequiresAuthorization)
	assert.Equal(t, 101, resp.QuantityTotal, "la autorización solo sube, nunca baja")

	stored, _ := repo.GetByID("op-1")
	assert.Equal(t, 26, stored.TargetFor("Rojo", "S"))
	assert.Equal(t, 101, stored.QuantityTotal)
	assert.Equal(t, stored.QuantityTotal, itemsSum(stored),
		"la suma de items debe seguir siendo igual a QuantityTotal")

	var authEvents int
	for _, ev := range stored.Events {
		if ev.Type == entity.EventTypeAuthorization {
			authEvents++
			assert.Contains(t, ev.Description, "supervisora",
				"el evento debe registrar quién autorizó")
		}
	}
	assert.Equal(t, 1, authEvents, "debe quedar exactamente un evento de autorización")
}

func TestSubmitJob_ParNuevoAutorizadoSeInsertaEnItems(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusPlanned)
	uc := production.NewCuttingUseCase(repo)

	// Verde no está declarado: meta 0, las 5 piezas son exceso puro.
	resp, err := uc.SubmitJob("op-1", dto.SubmitCuttingJobRequest{
		Matrix:       []entity.MatrixRatio{{Size: "S", Ratio: 1}},
		Layers:       []entity.LayerDefinition{{Color: "Verde", Layers: 5}},
		AuthorizedBy: "supervisora",
	}, "cortador1")
	require.NoError(t, err)
	assert.True(t, resp.Accepted)

	stored, _ := repo.GetByID("op-1")
	assert.Equal(t, 5, stored.TargetFor("Verde", "S"), "el par autorizado se inserta en el desglose")
	assert.Equal(t, 105, stored.QuantityTotal)
	assert.Equal(t, stored.QuantityTotal, itemsSum(stored))
}

func TestSubmitJob_CorteCompletoAlAlcanzarLaMeta(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusPlanned)
	uc := production.NewCuttingUseCase(repo)

	// Exactamente 25 por par: 100 de 100.
	resp, err := uc.SubmitJob("op-1", dto.SubmitCuttingJobRequest{
		Matrix: []entity.MatrixRatio{{Size: "S", Ratio: 1}, {Size: "M", Ratio: 1}},
		Layers: []entity.LayerDefinition{{Color: "Rojo", Layers: 25}, {Color: "Azul", Layers: 25}},
	}, "cortador1")
	require.NoError(t, err)

	assert.True(t, resp.Accepted)
	assert.True(t, resp.CuttingComplete)
	assert.Equal(t, 100, resp.CutQuantity)

	stored, _ := repo.GetByID("op-1")
	assert.Equal(t, entity.StatusCutting, stored.Status,
		"completar el corte es informativo, no cambia el estado")
}

func TestSubmitJob_TacoVacioRechazado(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusPlanned)
	uc := production.NewCuttingUseCase(repo)

	_, err := uc.SubmitJob("op-1", dto.SubmitCuttingJobRequest{}, "cortador1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitJob_EstadoPosteriorAlCorteRechazado(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusSewing)
	uc := production.NewCuttingUseCase(repo)

	_, err := uc.SubmitJob("op-1", dto.SubmitCuttingJobRequest{
		Matrix: []entity.MatrixRatio{{Size: "S", Ratio: 1}},
		Layers: []entity.LayerDefinition{{Color: "Rojo", Layers: 1}},
	}, "cortador1")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestSubmitJob_OPInexistente(t *testing.T) {
	uc := production.NewCuttingUseCase(newFakeOrderRepo())
	_, err := uc.SubmitJob("no-existe", dto.SubmitCuttingJobRequest{
		Matrix: []entity.MatrixRatio{{Size: "S", Ratio: 1}},
		Layers: []entity.LayerDefinition{{Color: "Rojo", Layers: 1}},
	}, "cortador1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestartCutting_VaciaTacosYVuelveAPlanned(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusPlanned)
	uc := production.NewCuttingUseCase(repo)

	_, err := uc.SubmitJob("op-1", dto.SubmitCuttingJobRequest{
		Matrix: []entity.MatrixRatio{{Size: "S", Ratio: 1}},
		Layers: []entity.LayerDefinition{{Color: "Rojo", Layers: 10}},
	}, "cortador1")
	require.NoError(t, err)

	resp, err := uc.RestartCutting("op-1", "cortador1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPlanned, resp.Status)
	assert.Zero(t, resp.CutQuantity)

	stored, _ := repo.GetByID("op-1")
	assert.Empty(t, stored.CuttingDetails.Jobs, "los tacos deben descartarse")
}

func TestRestartCutting_RechazadoDespuesDelCorte(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, entity.StatusSewing)
	uc := production.NewCuttingUseCase(repo)

	_, err := uc.RestartCutting("op-1", "cortador1")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition,
		"reiniciar el corte con la OP en confección destruiría el historial")
}

// Escritor concurrente: dos lectores parten de la misma versión; el segundo
// commit llega con un snapshot vencido y debe chocar.
func TestSubmitJob_SnapshotVencidoConflicto(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedOrder(t, repo, entity.StatusPlanned)

	first, _ := repo.GetByID(order.ID)
	second, _ := repo.GetByID(order.ID)

	require.NoError(t, repo.Update(first, first.Version))

	err := repo.Update(second, second.Version)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"un Update con versión vencida debe fallar con conflicto")
}
