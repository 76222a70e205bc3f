package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// LifecycleUseCase gobierna las transiciones de estado de una OP y sus efectos:
// evento de auditoría, materialización de stock al completar y los reverts de
// corrección de etapa. El flujo es hacia adelante; los reverts existen solo
// para deshacer una entrada de etapa errónea.
//
// Nota de comportamiento heredado del producto: guardar la revisión deja la OP
// directamente en packing. "Control de calidad" solo se persiste como estado
// al hacer el revert packing→quality_control; en el flujo normal es apenas una
// etiqueta de filtro.
type LifecycleUseCase struct {
	orderRepo repository.OrderRepository
	stockRepo repository.FinishedStockRepository
	txRunner  TxRunner
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(orderRepo repository.OrderRepository, stockRepo repository.FinishedStockRepository, txRunner TxRunner) *LifecycleUseCase {
	return &LifecycleUseCase{orderRepo: orderRepo, stockRepo: stockRepo, txRunner: txRunner}
}

// AdvanceToSewing pasa la OP de corte a confección. Operación explícita para
// que la máquina de estados sea total.
func (uc *LifecycleUseCase) AdvanceToSewing(orderID, user string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.StatusCutting {
		return nil, domain.ErrIllegalTransition
	}

	now := time.Now()
	order.Status = entity.StatusSewing
	order.AppendEvent(user, "advance_sewing", "OP entregada a confección", entity.EventTypeStatus, now)
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(order, order.Version); err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}

// SaveRevision registra los datos de revisión y deja la OP en packing
// (CompleteRevision). Legal desde corte, confección o control de calidad:
// la entrega de datos de la siguiente etapa es la salida autoritativa del corte.
func (uc *LifecycleUseCase) SaveRevision(orderID string, in dto.SaveRevisionRequest, user string) (*dto.OrderResponse, error) {
	if strings.TrimSpace(in.ReviewerName) == "" || in.QuantityApproved < 0 || in.DefectCount < 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	switch order.Status {
	case entity.StatusCutting, entity.StatusSewing, entity.StatusQualityControl:
	default:
		return nil, domain.ErrIllegalTransition
	}

	now := time.Now()
	order.RevisionDetails = &entity.RevisionDetails{
		ReviewerName:     strings.TrimSpace(in.ReviewerName),
		QuantityApproved: in.QuantityApproved,
		DefectCount:      in.DefectCount,
		Notes:            in.Notes,
		IsFinalized:      true,
		ReviewedDate:     now,
	}
	order.Status = entity.StatusPacking
	order.AppendEvent(user, "complete_revision",
		fmt.Sprintf("Revisión cerrada por %s: %d aprobadas, %d con defecto", in.ReviewerName, in.QuantityApproved, in.DefectCount),
		entity.EventTypeStatus, now)
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(order, order.Version); err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}

// SavePacking cierra el empaque y completa la OP, materializando el stock de
// producto terminado en la misma transacción. El guard de estado (solo desde
// packing) garantiza que la materialización corre únicamente en el borde
// status != completed → completed: repetir la llamada sobre una OP completada
// falla sin duplicar stock.
func (uc *LifecycleUseCase) SavePacking(ctx context.Context, orderID string, in dto.SavePackingRequest, user string) (*dto.OrderResponse, error) {
	if strings.TrimSpace(in.PackerName) == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.Color == "" || it.Size == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var result *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository, stockRepo repository.FinishedStockRepository) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.StatusPacking {
			return domain.ErrIllegalTransition
		}

		now := time.Now()
		packed := in.Items
		quantityPacked := 0
		for _, it := range packed {
			quantityPacked += it.Quantity
		}
		if len(packed) == 0 {
			quantityPacked = order.QuantityTotal
		}
		order.PackingDetails = &entity.PackingDetails{
			PackerName:     strings.TrimSpace(in.PackerName),
			Items:          packed,
			QuantityPacked: quantityPacked,
			IsFinalized:    true,
			PackedDate:     now,
		}
		order.Status = entity.StatusCompleted
		order.AppendEvent(user, "complete_packing",
			fmt.Sprintf("Empaque cerrado por %s: %d piezas; OP completada", in.PackerName, quantityPacked),
			entity.EventTypeStatus, now)
		order.UpdatedAt = now

		if err := orderRepo.Update(order, order.Version); err != nil {
			return err
		}
		// Lote atómico: o entran todas las filas de stock o ninguna.
		if err := stockRepo.CreateBatch(MaterializeStock(order, now)); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(result), nil
}

// RevertPackingToRevision deshace la entrada a empaque: reabre la revisión y
// deja la OP en quality_control.
func (uc *LifecycleUseCase) RevertPackingToRevision(orderID, user string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.StatusPacking {
		return nil, domain.ErrIllegalTransition
	}

	now := time.Now()
	if order.RevisionDetails != nil {
		order.RevisionDetails.IsFinalized = false
	}
	order.Status = entity.StatusQualityControl
	order.AppendEvent(user, "revert_packing", "Empaque revertido; revisión reabierta", entity.EventTypeRevert, now)
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(order, order.Version); err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}

// RevertCompletedStockToPacking deshace el completado de la OP dueña de la
// fila de stock indicada: elimina TODO el stock creado por ese completado y
// reabre el empaque. Transaccional: si la eliminación de stock falla, la OP
// queda completada tal como estaba.
func (uc *LifecycleUseCase) RevertCompletedStockToPacking(ctx context.Context, stockID, user string) (*dto.OrderResponse, error) {
	stock, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.ProductionOrder
	err = uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository, stockRepo repository.FinishedStockRepository) error {
		order, err := orderRepo.GetByIDForUpdate(stock.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.StatusCompleted {
			return domain.ErrIllegalTransition
		}

		removed, err := stockRepo.DeleteByOrder(order.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		if order.PackingDetails != nil {
			order.PackingDetails.IsFinalized = false
		}
		order.Status = entity.StatusPacking
		order.AppendEvent(user, "revert_completed",
			fmt.Sprintf("Completado revertido: %d filas de stock eliminadas; empaque reabierto", removed),
			entity.EventTypeRevert, now)
		order.UpdatedAt = now

		if err := orderRepo.Update(order, order.Version); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(result), nil
}

// Cancel transiciona una OP no terminal a cancelled (estado absorbente).
func (uc *LifecycleUseCase) Cancel(orderID, user string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.IsTerminal() {
		return nil, domain.ErrIllegalTransition
	}

	now := time.Now()
	order.Status = entity.StatusCancelled
	order.AppendEvent(user, "cancel", "OP cancelada", entity.EventTypeStatus, now)
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(order, order.Version); err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}
