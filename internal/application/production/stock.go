package production

import (
	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// StockUseCase consulta y exportación del stock de producto terminado.
type StockUseCase struct {
	stockRepo repository.FinishedStockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stockRepo repository.FinishedStockRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo}
}

// List devuelve las filas de producto terminado que pasan el filtro.
func (uc *StockUseCase) List(filter repository.StockFilter) ([]*dto.StockResponse, error) {
	records, err := uc.stockRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ToStockResponse(r))
	}
	return out, nil
}

// MarkExported marca una fila available como exported. Las filas exportadas ya
// salieron de bodega y no admiten más mutación.
func (uc *StockUseCase) MarkExported(stockID string) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if stock.Status != entity.StockStatusAvailable {
		return nil, domain.ErrIllegalTransition
	}
	if err := uc.stockRepo.UpdateStatus(stockID, entity.StockStatusExported); err != nil {
		return nil, err
	}
	stock.Status = entity.StockStatusExported
	return dto.ToStockResponse(stock), nil
}
