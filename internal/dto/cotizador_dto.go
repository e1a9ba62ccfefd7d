package dto

import "github.com/shopspring/decimal"

// ─── Request ─────────────────────────────────────────────────────────────────

// CotizarRequest is the single entry point of the pricing engine. Every
// numeric field is zero-safe; origen/destino default to the carrier's two
// canonical hubs when omitted.
type CotizarRequest struct {
	ClienteID      string          `json:"cliente_id" validate:"omitempty,uuid"`
	CUIT           string          `json:"cuit"`
	Nombre         string          `json:"nombre"`
	Origen         string          `json:"origen"`
	Destino        string          `json:"destino"`
	Bultos         int             `json:"bultos"          validate:"min=0"`
	PesoKg         float64         `json:"peso_kg"         validate:"min=0"`
	VolumenM3      float64         `json:"volumen_m3"      validate:"min=0"`
	ValorDeclarado decimal.Decimal `json:"valor_declarado" validate:"min=0"`
}

// ─── Response ────────────────────────────────────────────────────────────────

// Fuentes del precio resuelto.
const (
	FuenteTarifaEspecial   = "tarifa_especial"
	FuenteContrato         = "contrato"
	FuenteCotizacion       = "cotizacion"
	FuenteTarifaGeneral    = "tarifa_general"
	FuenteTarifaEmergencia = "tarifa_emergencia"
)

// EtiquetaUI is the tag the frontend renders for the chosen path.
type EtiquetaUI struct {
	Color       string `json:"color"` // verde | amarillo | rojo
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
}

// ClienteResumen echoes the resolved client.
type ClienteResumen struct {
	ID            string `json:"id"`
	RazonSocial   string `json:"razon_social"`
	CUIT          string `json:"cuit"`
	TipoCliente   string `json:"tipo_cliente"`
	CondicionPago string `json:"condicion_pago"`
	TipoEntrega   string `json:"tipo_entrega"`
}

// PrecioBlock carries the resolved price. Precio is null when no tariff
// could be resolved at all; Desglose keys are documented in
// internal/pricing/calculadora.go.
type PrecioBlock struct {
	Fuente           string           `json:"fuente"`
	Precio           *decimal.Decimal `json:"precio"`
	Desglose         map[string]any   `json:"desglose"`
	TarifaID         *string          `json:"tarifa_id,omitempty"`
	TarifaToneladaID *string          `json:"tarifa_tonelada_id,omitempty"`
	TarifaEspecialID *string          `json:"tarifa_especial_id,omitempty"`
}

// TarifaEspecialEvaluada reports why each rule did or did not apply —
// surfaced so the UI can answer "why didn't this apply".
type TarifaEspecialEvaluada struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Prioridad int    `json:"prioridad"`
	Cumple    bool   `json:"cumple"`
	Motivo    string `json:"motivo"`
}

// CondicionesComercialesEcho echoes the active contract terms used.
type CondicionesComercialesEcho struct {
	TipoTarifa     string          `json:"tipo_tarifa"`
	ModificadorPct decimal.Decimal `json:"modificador_pct"`
	TasaSeguro     decimal.Decimal `json:"tasa_seguro"`
	DiasCredito    int             `json:"dias_credito"`
}

// CotizacionEcho echoes the matched prior quotation (Camino B).
type CotizacionEcho struct {
	ID            string          `json:"id"`
	ClienteNombre string          `json:"cliente_nombre"`
	Destino       string          `json:"destino"`
	PesoKg        float64         `json:"peso_kg"`
	Bultos        int             `json:"bultos"`
	PrecioTotal   decimal.Decimal `json:"precio_total"`
	ToleranciaPct float64         `json:"tolerancia_pct"`
	ValidaHasta   string          `json:"valida_hasta"`
}

// DebugInfo is the machine-readable trace of every decision made.
type DebugInfo struct {
	PesoRealKg        float64  `json:"peso_real_kg"`
	PesoVolumetricoKg float64  `json:"peso_volumetrico_kg"`
	PesoACobrarKg     float64  `json:"peso_a_cobrar_kg"`
	CriterioPeso      string   `json:"criterio_peso"`
	Origen            string   `json:"origen"`
	Destino           string   `json:"destino"`
	Traza             []string `json:"traza"`
}

// CotizacionResponse is the engine's sole output, built fresh per request.
type CotizacionResponse struct {
	Camino   string          `json:"camino"` // A | B | C
	Etiqueta EtiquetaUI      `json:"etiqueta"`
	Cliente  *ClienteResumen `json:"cliente"`
	Precio   PrecioBlock     `json:"precio"`

	Cotizacion       *CotizacionEcho `json:"cotizacion,omitempty"`
	RequiereRevision bool            `json:"requiere_revision"`
	MotivoRevision   string          `json:"motivo_revision,omitempty"`

	CondicionesComerciales *CondicionesComercialesEcho `json:"condiciones_comerciales,omitempty"`
	TarifasEspeciales      []TarifaEspecialEvaluada    `json:"tarifas_especiales"`
	TarifaEspecialAplicada *TarifaEspecialEvaluada     `json:"tarifa_especial_aplicada,omitempty"`

	Debug DebugInfo `json:"debug"`
}
