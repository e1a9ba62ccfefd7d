package pricing

import "github.com/shopspring/decimal"

// Tipos de precio de las tarifas especiales tal como se persisten.
const (
	PrecioFijo                = "fijo"
	PrecioPorKg               = "por_kg"
	PrecioPorM3               = "por_m3"
	PrecioPorPallet           = "por_pallet"
	PrecioPorBulto            = "por_bulto"
	PrecioFormulaCustom       = "formula_custom"
	PrecioDescuentoPorcentaje = "descuento_porcentaje"
	PrecioDescuentoMonto      = "descuento_monto"
)

// Modalidad is the closed set of pricing modes a special tariff can carry,
// decoded once at the repository boundary from the stored values map.
type Modalidad interface {
	TipoModalidad() string
}

// ModFijo charges a flat price regardless of cargo.
type ModFijo struct{ Precio decimal.Decimal }

// ModPorKg charges per real kilogram with an optional floor.
type ModPorKg struct {
	PrecioKg decimal.Decimal
	Minimo   decimal.Decimal
}

// ModPorM3 charges per cubic meter.
type ModPorM3 struct{ PrecioM3 decimal.Decimal }

// ModPorPallet charges per pallet; a missing pallet count defaults to 1.
type ModPorPallet struct {
	Pallets      int
	PrecioPallet decimal.Decimal
}

// ModPorBulto charges per package; a missing count defaults to 1.
type ModPorBulto struct{ PrecioBulto decimal.Decimal }

// ModFormula delegates to the formula evaluator over kg/m3.
type ModFormula struct{ Expresion string }

// ModDescuentoPorcentaje adjusts a base by a signed percentage. When PrecioM3
// is set the adjusted base is volumen × PrecioM3, otherwise the resolved list
// price. The stored percentage carries its own sign: negative discounts,
// positive surcharges.
type ModDescuentoPorcentaje struct {
	Porcentaje float64
	PrecioM3   *decimal.Decimal
}

// ModDescuentoMonto adds a signed flat amount to the resolved list price.
type ModDescuentoMonto struct{ Monto decimal.Decimal }

// ModDesconocida covers unknown pricing types: the calculator falls back to
// the base tariff price.
type ModDesconocida struct{ Tipo string }

func (ModFijo) TipoModalidad() string                { return PrecioFijo }
func (ModPorKg) TipoModalidad() string               { return PrecioPorKg }
func (ModPorM3) TipoModalidad() string               { return PrecioPorM3 }
func (ModPorPallet) TipoModalidad() string           { return PrecioPorPallet }
func (ModPorBulto) TipoModalidad() string            { return PrecioPorBulto }
func (ModFormula) TipoModalidad() string             { return PrecioFormulaCustom }
func (ModDescuentoPorcentaje) TipoModalidad() string { return PrecioDescuentoPorcentaje }
func (ModDescuentoMonto) TipoModalidad() string      { return PrecioDescuentoMonto }
func (m ModDesconocida) TipoModalidad() string       { return m.Tipo }

// DecodificarModalidad builds the typed pricing variant for a stored row.
func DecodificarModalidad(tipo string, valores map[string]any) Modalidad {
	switch tipo {
	case PrecioFijo:
		return ModFijo{Precio: valorMonto(valores, "precio")}
	case PrecioPorKg:
		return ModPorKg{
			PrecioKg: valorMonto(valores, "precio_kg"),
			Minimo:   valorMonto(valores, "minimo"),
		}
	case PrecioPorM3:
		return ModPorM3{PrecioM3: valorMonto(valores, "precio_m3")}
	case PrecioPorPallet:
		pallets := int(valorNumerico(valores, "cant_pallets"))
		if pallets <= 0 {
			pallets = 1
		}
		return ModPorPallet{Pallets: pallets, PrecioPallet: valorMonto(valores, "precio_pallet")}
	case PrecioPorBulto:
		return ModPorBulto{PrecioBulto: valorMonto(valores, "precio_bulto")}
	case PrecioFormulaCustom:
		return ModFormula{Expresion: valorTexto(valores, "formula")}
	case PrecioDescuentoPorcentaje:
		m := ModDescuentoPorcentaje{Porcentaje: valorNumerico(valores, "porcentaje")}
		// a JSON null counts as absent: the discount then applies over the
		// resolved list price instead of volumen × 0
		if v, presente := valores["precio_m3"]; presente && v != nil {
			pm3 := valorMonto(valores, "precio_m3")
			m.PrecioM3 = &pm3
		}
		return m
	case PrecioDescuentoMonto:
		return ModDescuentoMonto{Monto: valorMonto(valores, "monto")}
	default:
		return ModDesconocida{Tipo: tipo}
	}
}

func valorMonto(valores map[string]any, clave string) decimal.Decimal {
	if valores == nil {
		return decimal.Zero
	}
	switch v := valores[clave].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
