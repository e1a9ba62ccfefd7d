package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func calcDefault() Calculadora {
	return Calculadora{TasaSeguroDefault: d("0.008")}
}

func TestPrecioPorContrato_DescuentoYSeguro(t *testing.T) {
	calc := calcDefault()
	carga := Carga{PesoKg: 500, ValorDeclarado: d("10000")}
	peso := CalcularPesoACobrar(500, 0)

	// 1000 - 10% = 900, seguro 10000 × 0.008 = 80
	precio, desglose := calc.PrecioPorContrato(d("1000"), d("-10"), carga, peso, decimal.Zero, "deposito", NuevoTrace())

	assert.True(t, d("980").Equal(precio), "precio = %s", precio)
	assert.True(t, d("900").Equal(desglose[DesgloseFlete].(decimal.Decimal)))
	assert.True(t, d("-100").Equal(desglose[DesgloseDescuento].(decimal.Decimal)))
	assert.True(t, d("80").Equal(desglose[DesgloseSeguro].(decimal.Decimal)))
	assert.Equal(t, flagTarifaPesoReal, desglose[DesgloseTipoTarifa])
}

func TestPrecioPorContrato_RecargoPositivo(t *testing.T) {
	calc := calcDefault()
	peso := CalcularPesoACobrar(100, 0)

	precio, _ := calc.PrecioPorContrato(d("1000"), d("15"), Carga{PesoKg: 100}, peso, decimal.Zero, "domicilio", NuevoTrace())

	assert.True(t, d("1150").Equal(precio), "precio = %s", precio)
}

func TestPrecioPorContrato_SinModificadorNiSeguro(t *testing.T) {
	calc := calcDefault()
	peso := CalcularPesoACobrar(100, 0)

	// valor declarado 0: no se cobra seguro aunque haya tasa
	precio, desglose := calc.PrecioPorContrato(d("1000"), decimal.Zero, Carga{PesoKg: 100}, peso, decimal.Zero, "deposito", NuevoTrace())

	assert.True(t, d("1000").Equal(precio))
	_, tiene := desglose[DesgloseSeguro]
	assert.False(t, tiene)
}

func TestPrecioPorContrato_TasaDelClientePisaDefault(t *testing.T) {
	calc := calcDefault()
	carga := Carga{PesoKg: 100, ValorDeclarado: d("1000")}
	peso := CalcularPesoACobrar(100, 0)

	precio, _ := calc.PrecioPorContrato(d("500"), decimal.Zero, carga, peso, d("0.02"), "deposito", NuevoTrace())

	// seguro 1000 × 0.02 = 20
	assert.True(t, d("520").Equal(precio), "precio = %s", precio)
}

func TestPrecioPorTarifaEspecial_Fijo(t *testing.T) {
	calc := calcDefault()
	peso := CalcularPesoACobrar(100, 0)

	precio, desglose := calc.PrecioPorTarifaEspecial(ModFijo{Precio: d("2500")}, Carga{PesoKg: 100}, peso, d("9999"), decimal.Zero, nil, NuevoTrace())

	assert.True(t, d("2500").Equal(precio))
	assert.True(t, d("2500").Equal(desglose[DesgloseFlete].(decimal.Decimal)))
}

func TestPrecioPorTarifaEspecial_PorKgConMinimo(t *testing.T) {
	calc := calcDefault()
	peso := CalcularPesoACobrar(10, 0)

	// 10 kg × 50 = 500, por debajo del mínimo 800
	precio, _ := calc.PrecioPorTarifaEspecial(ModPorKg{PrecioKg: d("50"), Minimo: d("800")}, Carga{PesoKg: 10}, peso, decimal.Zero, decimal.Zero, nil, NuevoTrace())

	assert.True(t, d("800").Equal(precio), "precio = %s", precio)
}

func TestPrecioPorTarifaEspecial_FormulaInvalidaCaeABase(t *testing.T) {
	calc := calcDefault()
	peso := CalcularPesoACobrar(100, 0)
	trace := NuevoTrace()

	precio, _ := calc.PrecioPorTarifaEspecial(ModFormula{Expresion: "kg; DROP"}, Carga{PesoKg: 100}, peso, d("1234"), decimal.Zero, nil, trace)

	assert.True(t, d("1234").Equal(precio), "precio = %s", precio)
	assert.Contains(t, trace.String(), "inválida")
}

func TestPrecioPorTarifaEspecial_SeguroOverrideCero(t *testing.T) {
	calc := calcDefault()
	carga := Carga{PesoKg: 100, ValorDeclarado: d("10000")}
	peso := CalcularPesoACobrar(100, 0)
	cero := decimal.Zero

	// override explícito en 0: sin seguro, aunque el default sea 0.008
	precio, desglose := calc.PrecioPorTarifaEspecial(ModFijo{Precio: d("1000")}, carga, peso, decimal.Zero, decimal.Zero, &cero, NuevoTrace())

	assert.True(t, d("1000").Equal(precio), "precio = %s", precio)
	_, tiene := desglose[DesgloseSeguro]
	assert.False(t, tiene)
}

func TestPrecioPorTarifaEspecial_SinOverrideUsaDefault(t *testing.T) {
	calc := calcDefault()
	carga := Carga{PesoKg: 100, ValorDeclarado: d("10000")}
	peso := CalcularPesoACobrar(100, 0)

	// sin override: cae a la tasa default 0.008 → seguro 80
	precio, _ := calc.PrecioPorTarifaEspecial(ModFijo{Precio: d("1000")}, carga, peso, decimal.Zero, decimal.Zero, nil, NuevoTrace())

	assert.True(t, d("1080").Equal(precio), "precio = %s", precio)
}

func TestPrecioPorTarifaEspecial_DescuentoPorcentajeSobreM3(t *testing.T) {
	calc := calcDefault()
	carga := Carga{PesoKg: 100, VolumenM3: 4}
	peso := CalcularPesoACobrar(100, 4)

	pm3 := d("1000")
	// referencia 4 × 1000 = 4000, -25% = 3000
	precio, _ := calc.PrecioPorTarifaEspecial(ModDescuentoPorcentaje{Porcentaje: -25, PrecioM3: &pm3}, carga, peso, d("9999"), decimal.Zero, nil, NuevoTrace())

	assert.True(t, d("3000").Equal(precio), "precio = %s", precio)
}

func TestPrecioPorTarifaEspecial_DescuentoMonto(t *testing.T) {
	calc := calcDefault()
	peso := CalcularPesoACobrar(100, 0)

	precio, _ := calc.PrecioPorTarifaEspecial(ModDescuentoMonto{Monto: d("-150")}, Carga{PesoKg: 100}, peso, d("1000"), decimal.Zero, nil, NuevoTrace())

	assert.True(t, d("850").Equal(precio), "precio = %s", precio)
}

func TestPrecioPorTarifaEspecial_ModalidadDesconocidaCaeABase(t *testing.T) {
	calc := calcDefault()
	peso := CalcularPesoACobrar(100, 0)
	trace := NuevoTrace()

	precio, _ := calc.PrecioPorTarifaEspecial(ModDesconocida{Tipo: "combo_nuevo"}, Carga{PesoKg: 100}, peso, d("700"), decimal.Zero, nil, trace)

	assert.True(t, d("700").Equal(precio))
	assert.Contains(t, trace.String(), "combo_nuevo")
}
