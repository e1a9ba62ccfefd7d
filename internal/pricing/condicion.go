package pricing

// Tipos de condición de las tarifas especiales tal como se persisten.
const (
	CondicionPesoMinimo    = "peso_minimo"
	CondicionVolumenMinimo = "volumen_minimo"
	CondicionBultosMinimo  = "bultos_minimo"
	CondicionTipoCarga     = "tipo_carga"
	CondicionCualquiera    = "cualquiera"
)

// Condicion is the closed set of activation conditions a special tariff can
// carry. The stored rows keep a loosely-typed values map; the repository
// decodes it once into one of these variants so the matcher never inspects
// raw maps.
type Condicion interface {
	TipoCondicion() string
}

// CondPesoMinimo requires the real cargo weight to reach a minimum.
type CondPesoMinimo struct{ Kg float64 }

// CondVolumenMinimo requires the cargo volume to reach a minimum.
type CondVolumenMinimo struct{ M3 float64 }

// CondBultosMinimo requires a minimum package count.
type CondBultosMinimo struct{ Cantidad int }

// CondTipoCarga is advisory only: it annotates the match reason but never
// blocks a match.
type CondTipoCarga struct{ Tipo string }

// CondCualquiera always matches.
type CondCualquiera struct{}

// CondOtra covers unknown condition types. Deliberately permissive: an
// unrecognized type matches with a generic reason instead of blocking.
type CondOtra struct{ Tipo string }

func (CondPesoMinimo) TipoCondicion() string    { return CondicionPesoMinimo }
func (CondVolumenMinimo) TipoCondicion() string { return CondicionVolumenMinimo }
func (CondBultosMinimo) TipoCondicion() string  { return CondicionBultosMinimo }
func (CondTipoCarga) TipoCondicion() string     { return CondicionTipoCarga }
func (CondCualquiera) TipoCondicion() string    { return CondicionCualquiera }
func (c CondOtra) TipoCondicion() string        { return c.Tipo }

// DecodificarCondicion builds the typed variant for a stored condition row.
// Missing or malformed values decode to zero values — validation of reference
// data is a back-office concern, not the engine's.
func DecodificarCondicion(tipo string, valores map[string]any) Condicion {
	switch tipo {
	case CondicionPesoMinimo:
		return CondPesoMinimo{Kg: valorNumerico(valores, "peso_minimo_kg")}
	case CondicionVolumenMinimo:
		return CondVolumenMinimo{M3: valorNumerico(valores, "volumen_minimo_m3")}
	case CondicionBultosMinimo:
		return CondBultosMinimo{Cantidad: int(valorNumerico(valores, "bultos_minimo"))}
	case CondicionTipoCarga:
		return CondTipoCarga{Tipo: valorTexto(valores, "tipo_carga")}
	case CondicionCualquiera:
		return CondCualquiera{}
	default:
		return CondOtra{Tipo: tipo}
	}
}

// valorNumerico extracts a float from a jsonb values map, tolerating the
// numeric representations json decoding may produce.
func valorNumerico(valores map[string]any, clave string) float64 {
	if valores == nil {
		return 0
	}
	switch v := valores[clave].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func valorTexto(valores map[string]any, clave string) string {
	if valores == nil {
		return ""
	}
	s, _ := valores[clave].(string)
	return s
}
