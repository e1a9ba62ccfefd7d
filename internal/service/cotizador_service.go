package service

import (
	"context"
	"time"

	"fletero/internal/config"
	"fletero/internal/dto"
	"fletero/internal/model"
	"fletero/internal/pricing"
	"fletero/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caminos de cotización, mutuamente excluyentes.
const (
	CaminoContrato   = "A" // cliente con contrato / tarifas especiales
	CaminoCotizacion = "B" // destinatario con cotización previa
	CaminoGeneral    = "C" // mostrador / efectivo, último recurso
)

// CotizadorService is the engine's single entry point: it selects the pricing
// path, resolves a base tariff, applies commercial modifiers or special
// tariffs, and returns a fully explainable price. Stateless between requests.
type CotizadorService interface {
	Cotizar(ctx context.Context, req dto.CotizarRequest) (*dto.CotizacionResponse, error)
}

type cotizadorService struct {
	clientes     repository.ClienteRepository
	especiales   repository.TarifaEspecialRepository
	cotizaciones repository.CotizacionRepository
	resolver     *TarifaResolver
	calc         pricing.Calculadora

	origenDefault      string
	destinoDefault     string
	tarifaEmergenciaKg decimal.Decimal

	// ahora is injectable so validity windows are testable
	ahora func() time.Time
}

func NewCotizadorService(
	clientes repository.ClienteRepository,
	tarifas repository.TarifaRepository,
	especiales repository.TarifaEspecialRepository,
	cotizaciones repository.CotizacionRepository,
	cfg *config.Config,
) CotizadorService {
	return &cotizadorService{
		clientes:           clientes,
		especiales:         especiales,
		cotizaciones:       cotizaciones,
		resolver:           NewTarifaResolver(tarifas),
		calc:               pricing.Calculadora{TasaSeguroDefault: decimal.NewFromFloat(cfg.TasaSeguroDefault)},
		origenDefault:      cfg.OrigenDefault,
		destinoDefault:     cfg.DestinoDefault,
		tarifaEmergenciaKg: decimal.NewFromFloat(cfg.TarifaEmergenciaKg),
		ahora:              time.Now,
	}
}

func (s *cotizadorService) Cotizar(ctx context.Context, req dto.CotizarRequest) (*dto.CotizacionResponse, error) {
	trace := pricing.NuevoTrace()
	ahora := s.ahora()

	origen := req.Origen
	if origen == "" {
		origen = s.origenDefault
	}
	destino := req.Destino
	if destino == "" {
		destino = s.destinoDefault
	}

	carga := pricing.Carga{
		PesoKg:         req.PesoKg,
		VolumenM3:      req.VolumenM3,
		ValorDeclarado: req.ValorDeclarado,
		Bultos:         req.Bultos,
	}
	peso := pricing.CalcularPesoACobrar(carga.PesoKg, carga.VolumenM3)
	trace.Agregar("peso a cobrar %.2f kg (%s): %s", peso.ACobrarKg, peso.Criterio, peso.Detalle)

	cliente, err := s.resolverCliente(ctx, req, trace)
	if err != nil {
		return nil, err
	}

	resp := &dto.CotizacionResponse{
		TarifasEspeciales: []dto.TarifaEspecialEvaluada{},
	}
	if cliente != nil {
		resp.Cliente = resumenCliente(cliente)
	}

	// ── Camino A: cliente con contrato ──────────────────────────────────────
	if cliente != nil {
		condiciones, err := s.clientes.FindCondicionComercial(ctx, cliente.ID)
		if err != nil {
			return nil, err
		}
		tarifasEsp, err := s.especiales.FindActivas(ctx, cliente.ID, ahora)
		if err != nil {
			return nil, err
		}

		esContrato := cliente.TipoCliente == model.ClienteRegular ||
			cliente.CondicionPago == model.PagoCuentaCorriente ||
			condiciones != nil ||
			len(tarifasEsp) > 0

		if esContrato {
			trace.Agregar("camino A: cliente %s con contrato (tipo=%s, pago=%s, condiciones=%t, especiales=%d)",
				cliente.RazonSocial, cliente.TipoCliente, cliente.CondicionPago, condiciones != nil, len(tarifasEsp))
			if err := s.cotizarCaminoA(ctx, resp, cliente, condiciones, tarifasEsp, carga, peso, origen, destino, ahora, trace); err != nil {
				return nil, err
			}
			s.completarDebug(resp, peso, origen, destino, trace)
			return resp, nil
		}
		trace.Agregar("cliente %s sin contrato ni tarifas especiales, se evalúa cotización previa", cliente.RazonSocial)
	}

	// ── Camino B: cotización previa pendiente ───────────────────────────────
	cuit := req.CUIT
	nombre := req.Nombre
	if cliente != nil {
		if cuit == "" {
			cuit = cliente.CUIT
		}
		if nombre == "" {
			nombre = cliente.RazonSocial
		}
	}
	cot, err := buscarCotizacion(ctx, s.cotizaciones, cuit, nombre, destino, ahora, trace)
	if err != nil {
		return nil, err
	}
	if cot != nil {
		s.cotizarCaminoB(resp, cot, carga, trace)
		s.completarDebug(resp, peso, origen, destino, trace)
		return resp, nil
	}

	// ── Camino C: tarifa general de mostrador ───────────────────────────────
	if err := s.cotizarCaminoC(ctx, resp, carga, peso, origen, destino, trace); err != nil {
		return nil, err
	}
	s.completarDebug(resp, peso, origen, destino, trace)
	return resp, nil
}

// resolverCliente tries id, then tax id, then fuzzy legal name; the first
// non-empty match wins.
func (s *cotizadorService) resolverCliente(ctx context.Context, req dto.CotizarRequest, trace *pricing.Trace) (*model.Cliente, error) {
	if req.ClienteID != "" {
		if id, err := uuid.Parse(req.ClienteID); err == nil {
			cliente, err := s.clientes.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if cliente != nil {
				trace.Agregar("cliente %s resuelto por id", cliente.RazonSocial)
				return cliente, nil
			}
		}
	}
	if req.CUIT != "" {
		cliente, err := s.clientes.FindByCUIT(ctx, req.CUIT)
		if err != nil {
			return nil, err
		}
		if cliente != nil {
			trace.Agregar("cliente %s resuelto por CUIT %s", cliente.RazonSocial, req.CUIT)
			return cliente, nil
		}
	}
	if req.Nombre != "" {
		cliente, err := s.clientes.SearchByRazonSocial(ctx, req.Nombre)
		if err != nil {
			return nil, err
		}
		if cliente != nil {
			trace.Agregar("cliente %s resuelto por razón social %q", cliente.RazonSocial, req.Nombre)
			return cliente, nil
		}
	}
	trace.Agregar("ningún cliente resuelto para la solicitud")
	return nil, nil
}

func (s *cotizadorService) cotizarCaminoA(
	ctx context.Context,
	resp *dto.CotizacionResponse,
	cliente *model.Cliente,
	condiciones *model.CondicionComercial,
	tarifasEsp []model.TarifaEspecial,
	carga pricing.Carga,
	peso pricing.PesoACobrar,
	origen, destino string,
	ahora time.Time,
	trace *pricing.Trace,
) error {
	resp.Camino = CaminoContrato
	resp.Etiqueta = dto.EtiquetaUI{
		Color:       "verde",
		Titulo:      "Cliente con cuenta",
		Descripcion: "Precio según contrato y tarifas especiales del cliente",
	}
	if condiciones != nil {
		resp.CondicionesComerciales = &dto.CondicionesComercialesEcho{
			TipoTarifa:     condiciones.TipoTarifa,
			ModificadorPct: condiciones.ModificadorPct,
			TasaSeguro:     condiciones.TasaSeguro,
			DiasCredito:    condiciones.DiasCredito,
		}
	}

	resultado, err := s.resolver.Resolver(ctx, origen, destino, peso.ACobrarKg, cliente.TipoEntregaEfectivo(), trace)
	if err != nil {
		return err
	}

	evaluadas, aplicada := evaluarTarifasEspeciales(tarifasEsp, carga, origen, destino, ahora, trace)
	resp.TarifasEspeciales = mapearEvaluadas(evaluadas)
	if aplicada != nil {
		for i := range resp.TarifasEspeciales {
			if resp.TarifasEspeciales[i].ID == aplicada.ID.String() {
				resp.TarifaEspecialAplicada = &resp.TarifasEspeciales[i]
				break
			}
		}
	}

	base := decimal.Zero
	if resultado != nil {
		base = resultado.PrecioBase
	}
	tasaCliente := decimal.Zero
	if condiciones != nil {
		tasaCliente = condiciones.TasaSeguro
	}

	if aplicada != nil {
		precio, desglose := s.calc.PrecioPorTarifaEspecial(
			aplicada.Modalidad, carga, peso, base, tasaCliente, aplicada.TasaSeguro, trace)
		resp.Precio = dto.PrecioBlock{
			Fuente:           dto.FuenteTarifaEspecial,
			Precio:           &precio,
			Desglose:         desglose,
			TarifaEspecialID: ptrStr(aplicada.ID.String()),
		}
		anotarTarifaBase(&resp.Precio, resultado)
		return nil
	}

	if resultado == nil {
		resp.Precio = dto.PrecioBlock{Fuente: dto.FuenteContrato, Desglose: map[string]any{}}
		resp.RequiereRevision = true
		resp.MotivoRevision = "sin tarifa cargada para la ruta: cargar tarifa o cotizar manualmente"
		return nil
	}

	modificador := decimal.Zero
	if condiciones != nil {
		modificador = condiciones.ModificadorPct
	}
	precio, desglose := s.calc.PrecioPorContrato(base, modificador, carga, peso, tasaCliente, cliente.TipoEntregaEfectivo(), trace)
	resp.Precio = dto.PrecioBlock{
		Fuente:   dto.FuenteContrato,
		Precio:   &precio,
		Desglose: desglose,
	}
	anotarTarifaBase(&resp.Precio, resultado)
	return nil
}

func (s *cotizadorService) cotizarCaminoB(resp *dto.CotizacionResponse, cot *model.Cotizacion, carga pricing.Carga, trace *pricing.Trace) {
	resp.Camino = CaminoCotizacion
	resp.Etiqueta = dto.EtiquetaUI{
		Color:       "amarillo",
		Titulo:      "Cotización previa",
		Descripcion: "Precio tomado de una cotización pendiente",
	}

	precio := cot.PrecioTotal
	resp.Precio = dto.PrecioBlock{
		Fuente: dto.FuenteCotizacion,
		Precio: &precio,
		Desglose: map[string]any{
			pricing.DesgloseFlete:       precio,
			pricing.DesglosePesoACobrar: cot.PesoKg,
		},
	}
	resp.Cotizacion = &dto.CotizacionEcho{
		ID:            cot.ID.String(),
		ClienteNombre: cot.ClienteNombre,
		Destino:       cot.Destino,
		PesoKg:        cot.PesoKg,
		Bultos:        cot.Bultos,
		PrecioTotal:   cot.PrecioTotal,
		ToleranciaPct: cot.Tolerancia(),
		ValidaHasta:   cot.ValidaHasta.Format("2006-01-02"),
	}

	if revisar, motivo := validarCotizacion(cot, carga.PesoKg, carga.Bultos); revisar {
		resp.RequiereRevision = true
		resp.MotivoRevision = motivo
		trace.Agregar("cotización fuera de tolerancia: %s", motivo)
	} else {
		trace.Agregar("carga dentro de la tolerancia de la cotización %s", cot.ID)
	}
}

func (s *cotizadorService) cotizarCaminoC(ctx context.Context, resp *dto.CotizacionResponse, carga pricing.Carga, peso pricing.PesoACobrar, origen, destino string, trace *pricing.Trace) error {
	resp.Camino = CaminoGeneral
	resp.Etiqueta = dto.EtiquetaUI{
		Color:       "rojo",
		Titulo:      "Tarifa general",
		Descripcion: "Sin contrato ni cotización previa: precio de mostrador",
	}
	resp.RequiereRevision = true
	resp.MotivoRevision = "sin cotización previa: confirmar el precio con el cliente"

	trace.Agregar("camino C: tarifa general con entrega en depósito")
	resultado, err := s.resolver.Resolver(ctx, origen, destino, peso.ACobrarKg, model.EntregaDeposito, trace)
	if err != nil {
		return err
	}

	if resultado != nil {
		precio, desglose := s.calc.PrecioPorContrato(resultado.PrecioBase, decimal.Zero, carga, peso, decimal.Zero, model.EntregaDeposito, trace)
		resp.Precio = dto.PrecioBlock{
			Fuente:   dto.FuenteTarifaGeneral,
			Precio:   &precio,
			Desglose: desglose,
		}
		anotarTarifaBase(&resp.Precio, resultado)
		return nil
	}

	// Documented last resort: flat per-kg placeholder so a number is always
	// returned.
	precio := decimal.NewFromFloat(peso.ACobrarKg).Mul(s.tarifaEmergenciaKg).Round(2)
	trace.Agregar("sin tarifa cargada: se aplica la tarifa de emergencia %.2f kg × %s = %s",
		peso.ACobrarKg, s.tarifaEmergenciaKg, precio)
	resp.Precio = dto.PrecioBlock{
		Fuente: dto.FuenteTarifaEmergencia,
		Precio: &precio,
		Desglose: map[string]any{
			pricing.DesglosePesoACobrar: peso.ACobrarKg,
			pricing.DesgloseFlete:       precio,
		},
	}
	return nil
}

func (s *cotizadorService) completarDebug(resp *dto.CotizacionResponse, peso pricing.PesoACobrar, origen, destino string, trace *pricing.Trace) {
	resp.Debug = dto.DebugInfo{
		PesoRealKg:        peso.PesoRealKg,
		PesoVolumetricoKg: peso.PesoVolumetricoKg,
		PesoACobrarKg:     peso.ACobrarKg,
		CriterioPeso:      peso.Criterio,
		Origen:            origen,
		Destino:           destino,
		Traza:             trace.Entradas(),
	}
}

func resumenCliente(c *model.Cliente) *dto.ClienteResumen {
	return &dto.ClienteResumen{
		ID:            c.ID.String(),
		RazonSocial:   c.RazonSocial,
		CUIT:          c.CUIT,
		TipoCliente:   c.TipoCliente,
		CondicionPago: c.CondicionPago,
		TipoEntrega:   c.TipoEntregaEfectivo(),
	}
}

func mapearEvaluadas(evaluadas []EvaluacionTarifaEspecial) []dto.TarifaEspecialEvaluada {
	out := make([]dto.TarifaEspecialEvaluada, 0, len(evaluadas))
	for _, ev := range evaluadas {
		out = append(out, dto.TarifaEspecialEvaluada{
			ID:        ev.Tarifa.ID.String(),
			Nombre:    ev.Tarifa.Nombre,
			Prioridad: ev.Tarifa.Prioridad,
			Cumple:    ev.Cumple,
			Motivo:    ev.Motivo,
		})
	}
	return out
}

func anotarTarifaBase(bloque *dto.PrecioBlock, resultado *ResultadoTarifa) {
	if resultado == nil {
		return
	}
	if resultado.UsaTonelada && resultado.Tonelada != nil {
		bloque.TarifaToneladaID = ptrStr(resultado.Tonelada.ID.String())
	}
	if resultado.Tarifa != nil {
		bloque.TarifaID = ptrStr(resultado.Tarifa.ID.String())
	}
}

func ptrStr(s string) *string { return &s }
