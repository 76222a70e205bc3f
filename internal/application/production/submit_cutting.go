package production

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/cutting"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// CuttingUseCase envío de tacos contra el plan de corte de una OP, con compuerta
// de autorización para sobreproducción, y reinicio del corte.
type CuttingUseCase struct {
	orderRepo repository.OrderRepository
}

// NewCuttingUseCase construye el caso de uso.
func NewCuttingUseCase(orderRepo repository.OrderRepository) *CuttingUseCase {
	return &CuttingUseCase{orderRepo: orderRepo}
}

// SubmitJob valida y comete un taco en una sola llamada idempotente:
//   - sin exceso: se comete directo.
//   - con exceso y AuthorizedBy vacío: no muta nada y devuelve los pares
//     excedidos para que el caller decida (no es un error, es flujo esperado).
//   - con exceso y AuthorizedBy: sube la demanda de los pares excedidos,
//     registra el evento de autorización y comete, todo en la misma operación.
//
// La validación y el commit operan sobre el mismo snapshot; si la OP cambió
// por debajo, el Update falla con domain.ErrConflict.
func (uc *CuttingUseCase) SubmitJob(orderID string, in dto.SubmitCuttingJobRequest, user string) (*dto.SubmitCuttingJobResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	switch order.Status {
	case entity.StatusDraft, entity.StatusPlanned, entity.StatusCutting:
	default:
		return nil, domain.ErrIllegalTransition
	}

	exceeding, err := cutting.Validate(order, in.Matrix, in.Layers)
	if err != nil {
		return nil, err
	}

	authorizer := strings.TrimSpace(in.AuthorizedBy)
	now := time.Now()

	if len(exceeding) > 0 {
		if authorizer == "" {
			// Compuerta de sobreproducción: flujo esperado, no un fallo.
			log.Info().
				Str("order_id", orderID).
				Str("lot", order.LotNumber).
				Int("pairs", len(exceeding)).
				Msg("taco excede la demanda declarada; requiere autorización")
			return &dto.SubmitCuttingJobResponse{
				RequiresAuthorization: true,
				CutQuantity:           order.CutQuantity(),
				QuantityTotal:         order.QuantityTotal,
				ExceedingPairs:        exceeding,
			}, nil
		}
		// Ajuste autorizado: solo aditivo. La demanda por par sube en Diff y
		// QuantityTotal crece en consecuencia; no existe camino de disminución.
		var parts []string
		for _, p := range exceeding {
			order.RaiseItem(p.Color, p.Size, p.Diff)
			parts = append(parts, fmt.Sprintf("%s/%s +%d", p.Color, p.Size, p.Diff))
		}
		order.AppendEvent(user, "authorize_overproduction",
			fmt.Sprintf("Sobreproducción autorizada por %s: %s", authorizer, strings.Join(parts, ", ")),
			entity.EventTypeAuthorization, now)
	}

	if order.CuttingDetails == nil {
		order.CuttingDetails = &entity.CuttingDetails{}
	}
	job := entity.CuttingJob{
		ID:          uuid.New().String(),
		Matrix:      in.Matrix,
		Layers:      in.Layers,
		TotalPieces: cutting.JobTotalPieces(in.Matrix, in.Layers),
		CreatedAt:   now,
		CreatedBy:   user,
	}
	order.CuttingDetails.Jobs = append(order.CuttingDetails.Jobs, job)

	if order.Status == entity.StatusDraft || order.Status == entity.StatusPlanned {
		order.Status = entity.StatusCutting
		order.AppendEvent(user, "start_cutting", "Primer taco aceptado; OP en corte", entity.EventTypeStatus, now)
	}
	// Reconciliación: la suma de items es la verdad; solo pudo crecer por la
	// autorización de arriba.
	order.QuantityTotal = order.TotalItems()
	order.AppendEvent(user, "cutting_job",
		fmt.Sprintf("Taco registrado: %d piezas (acumulado %d de %d)", job.TotalPieces, order.CutQuantity(), order.QuantityTotal),
		entity.EventTypeCutting, now)
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(order, order.Version); err != nil {
		return nil, err
	}

	return &dto.SubmitCuttingJobResponse{
		Accepted:        true,
		CuttingComplete: order.CuttingComplete(),
		CutQuantity:     order.CutQuantity(),
		QuantityTotal:   order.QuantityTotal,
	}, nil
}

// RestartCutting reinicia el plan: vuelve la OP a planned y vacía los tacos.
// Se rechaza si la OP ya avanzó más allá del corte: el historial del plan se
// destruiría sin camino de corrección.
func (uc *CuttingUseCase) RestartCutting(orderID, user string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.PastCutting() {
		return nil, domain.ErrIllegalTransition
	}

	now := time.Now()
	order.Status = entity.StatusPlanned
	if order.CuttingDetails != nil {
		order.CuttingDetails.Jobs = nil
		order.CuttingDetails.IsFinalized = false
	}
	order.AppendEvent(user, "restart_cutting", "Corte reiniciado; tacos descartados", entity.EventTypeRevert, now)
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(order, order.Version); err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}
