package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcularPesoACobrar_PesoRealGana(t *testing.T) {
	p := CalcularPesoACobrar(500, 1) // volumétrico = 300

	assert.Equal(t, 500.0, p.ACobrarKg)
	assert.Equal(t, CriterioReal, p.Criterio)
	assert.Equal(t, 300.0, p.PesoVolumetricoKg)
}

func TestCalcularPesoACobrar_VolumetricoGana(t *testing.T) {
	p := CalcularPesoACobrar(100, 2) // volumétrico = 600

	assert.Equal(t, 600.0, p.ACobrarKg)
	assert.Equal(t, CriterioVolumetrico, p.Criterio)
	assert.Equal(t, 100.0, p.PesoRealKg)
}

func TestCalcularPesoACobrar_Empate(t *testing.T) {
	// 300 kg reales vs 1 m³ × 300 = 300: en empate gana el peso real
	p := CalcularPesoACobrar(300, 1)

	assert.Equal(t, 300.0, p.ACobrarKg)
	assert.Equal(t, CriterioReal, p.Criterio)
}

func TestCalcularPesoACobrar_SinDatos(t *testing.T) {
	p := CalcularPesoACobrar(0, 0)

	assert.Equal(t, 0.0, p.ACobrarKg)
	assert.Contains(t, p.Detalle, "sin peso ni volumen")
}

func TestCalcularPesoACobrar_SoloVolumen(t *testing.T) {
	p := CalcularPesoACobrar(0, 1.5)

	assert.Equal(t, 450.0, p.ACobrarKg)
	assert.Equal(t, CriterioVolumetrico, p.Criterio)
}
