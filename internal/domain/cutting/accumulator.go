package cutting

import (
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
)

// Servicio de dominio del acumulador de corte: valida un taco candidato contra
// la demanda declarada de la OP y detecta sobreproducción por (color, talla).
// Puro: no toca repositorios ni muta la orden.

// ExceedingPair un par (color, talla) cuyo acumulado superaría la meta si se
// cometiera el taco candidato. Diff es cuánto habría que subir la demanda.
type ExceedingPair struct {
	Color   string `json:"color"`
	Size    string `json:"size"`
	Planned int    `json:"planned"` // cantidad declarada en items
	Current int    `json:"current"` // acumulado de tacos anteriores
	Cutting int    `json:"cutting"` // piezas del taco candidato para el par
	Diff    int    `json:"diff"`    // (current + cutting) - planned
}

// JobTotalPieces total de piezas de un taco: (Σ ratio) × (Σ capas).
// Invariante central del corte: siempre se recalcula, nunca se confía en el
// total enviado por el caller.
func JobTotalPieces(matrix []entity.MatrixRatio, layers []entity.LayerDefinition) int {
	ratioSum := 0
	for _, m := range matrix {
		ratioSum += m.Ratio
	}
	layerSum := 0
	for _, l := range layers {
		layerSum += l.Layers
	}
	return ratioSum * layerSum
}

// PairPieces piezas de un taco para un par concreto: ratio de la talla × capas del color.
func PairPieces(job entity.CuttingJob, color, size string) int {
	ratio := 0
	for _, m := range job.Matrix {
		if m.Size == size {
			ratio += m.Ratio
		}
	}
	layers := 0
	for _, l := range job.Layers {
		if l.Color == color {
			layers += l.Layers
		}
	}
	return ratio * layers
}

// Validate valida un taco candidato contra la OP. Devuelve la lista de pares
// que excederían la demanda declarada (vacía si el taco cabe completo).
// Cortar por debajo o exactamente hasta la meta nunca se bloquea; solo el
// exceso por par requiere autorización.
func Validate(order *entity.ProductionOrder, matrix []entity.MatrixRatio, layers []entity.LayerDefinition) ([]ExceedingPair, error) {
	if JobTotalPieces(matrix, layers) <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// Un mismo color o talla puede venir repartido en varias entradas del taco;
	// el acumulado por par se evalúa sobre la suma, no entrada por entrada.
	layersByColor := make(map[string]int)
	var colors []string
	for _, l := range layers {
		if l.Layers <= 0 {
			continue
		}
		if _, seen := layersByColor[l.Color]; !seen {
			colors = append(colors, l.Color)
		}
		layersByColor[l.Color] += l.Layers
	}
	ratioBySize := make(map[string]int)
	var sizes []string
	for _, m := range matrix {
		if m.Ratio <= 0 {
			continue
		}
		if _, seen := ratioBySize[m.Size]; !seen {
			sizes = append(sizes, m.Size)
		}
		ratioBySize[m.Size] += m.Ratio
	}

	var exceeding []ExceedingPair
	for _, color := range colors {
		for _, size := range sizes {
			qtyCutNow := layersByColor[color] * ratioBySize[size]
			histQty := historicalPairQuantity(order, color, size)
			targetQty := order.TargetFor(color, size)
			if histQty+qtyCutNow > targetQty {
				exceeding = append(exceeding, ExceedingPair{
					Color:   color,
					Size:    size,
					Planned: targetQty,
					Current: histQty,
					Cutting: qtyCutNow,
					Diff:    histQty + qtyCutNow - targetQty,
				})
			}
		}
	}
	return exceeding, nil
}

// historicalPairQuantity acumulado cortado para un par en todos los tacos previos.
func historicalPairQuantity(order *entity.ProductionOrder, color, size string) int {
	if order.CuttingDetails == nil {
		return 0
	}
	total := 0
	for _, job := range order.CuttingDetails.Jobs {
		total += PairPieces(job, color, size)
	}
	return total
}
