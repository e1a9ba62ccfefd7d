// Package pricing contains the pure computational pieces of the cotizador:
// chargeable weight, city aliases, the formula evaluator, and the price
// calculator. Nothing here touches the database — everything is a function of
// its inputs, so the whole package is safe under concurrent requests.
package pricing

import "fmt"

// FactorVolumetrico converts cargo volume (m³) into volumetric weight (kg).
// Standard trucking approximation for low-density, high-volume cargo.
const FactorVolumetrico = 300.0

// Criterio por el cual se eligió el peso a cobrar.
const (
	CriterioReal        = "REAL"
	CriterioVolumetrico = "VOLUMETRICO"
)

// PesoACobrar is the billable weight derived from real vs volumetric weight.
type PesoACobrar struct {
	PesoRealKg        float64 `json:"peso_real_kg"`
	PesoVolumetricoKg float64 `json:"peso_volumetrico_kg"`
	ACobrarKg         float64 `json:"a_cobrar_kg"`
	Criterio          string  `json:"criterio"`
	Detalle           string  `json:"detalle"`
}

// CalcularPesoACobrar returns max(pesoKg, volumenM3*300) and the criterion
// used. Total over non-negative inputs: zero in, zero out, never an error.
func CalcularPesoACobrar(pesoKg, volumenM3 float64) PesoACobrar {
	volumetrico := volumenM3 * FactorVolumetrico

	p := PesoACobrar{
		PesoRealKg:        pesoKg,
		PesoVolumetricoKg: volumetrico,
		ACobrarKg:         pesoKg,
		Criterio:          CriterioReal,
	}
	if volumetrico > pesoKg {
		p.ACobrarKg = volumetrico
		p.Criterio = CriterioVolumetrico
	}

	switch {
	case pesoKg == 0 && volumenM3 == 0:
		p.Detalle = "sin peso ni volumen informados: no se puede calcular el peso a cobrar"
	case p.Criterio == CriterioVolumetrico:
		p.Detalle = fmt.Sprintf("peso volumétrico %.2f kg (%.3f m³ × %d) supera el peso real %.2f kg",
			volumetrico, volumenM3, int(FactorVolumetrico), pesoKg)
	default:
		p.Detalle = fmt.Sprintf("peso real %.2f kg supera el volumétrico %.2f kg (%.3f m³ × %d)",
			pesoKg, volumetrico, volumenM3, int(FactorVolumetrico))
	}
	return p
}
