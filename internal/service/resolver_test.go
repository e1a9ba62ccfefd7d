package service

import (
	"context"
	"testing"

	"fletero/internal/model"
	"fletero/internal/pricing"
	"fletero/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubTarifaRepo answers tariff lookups from fixed fixtures and records every
// search it receives, so tests can assert on the fallback order.
type stubTarifaRepo struct {
	porPeso     func(b repository.BusquedaTarifaPeso) *model.TarifaPeso
	porTonelada *model.TarifaTonelada

	busquedas         []repository.BusquedaTarifaPeso
	consultasTonelada int
}

func (r *stubTarifaRepo) FindTarifaPeso(_ context.Context, b repository.BusquedaTarifaPeso) (*model.TarifaPeso, error) {
	r.busquedas = append(r.busquedas, b)
	if r.porPeso == nil {
		return nil, nil
	}
	return r.porPeso(b), nil
}

func (r *stubTarifaRepo) FindTarifaTonelada(_ context.Context, _, _ []string, _ string, _ float64) (*model.TarifaTonelada, error) {
	r.consultasTonelada++
	return r.porTonelada, nil
}

var _ repository.TarifaRepository = (*stubTarifaRepo)(nil)

func tarifaDe(origen, destino string, hastaKg float64, precio string) *model.TarifaPeso {
	return &model.TarifaPeso{
		Origen: origen, Destino: destino, TipoEntrega: model.EntregaDeposito,
		PesoHastaKg: hastaKg, Precio: decimal.RequireFromString(precio),
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestBucketPeso(t *testing.T) {
	assert.Equal(t, 100.0, BucketPeso(95))
	assert.Equal(t, 100.0, BucketPeso(100))
	assert.Equal(t, 110.0, BucketPeso(100.01))
	assert.Equal(t, 10.0, BucketPeso(0.5))
	assert.Equal(t, 0.0, BucketPeso(0))
}

func TestResolver_RutaDirecta(t *testing.T) {
	repo := &stubTarifaRepo{porPeso: func(b repository.BusquedaTarifaPeso) *model.TarifaPeso {
		if b.TipoEntrega == model.EntregaDeposito {
			return tarifaDe("Buenos Aires", "Comodoro Rivadavia", 100, "15000")
		}
		return nil
	}}
	r := NewTarifaResolver(repo)

	resultado, err := r.Resolver(context.Background(), "CABA", "Comodoro", 95, model.EntregaDeposito, pricing.NuevoTrace())
	require.NoError(t, err)
	require.NotNil(t, resultado)

	assert.False(t, resultado.UsaTonelada)
	assert.True(t, decimal.RequireFromString("15000").Equal(resultado.PrecioBase))
	// un solo intento: la primera estrategia resolvió
	require.Len(t, repo.busquedas, 1)
	// los alias amplían la búsqueda en ambos extremos de la ruta
	assert.Contains(t, repo.busquedas[0].Origenes, "Buenos Aires")
	assert.Contains(t, repo.busquedas[0].Destinos, "Comodoro Rivadavia")
	assert.Equal(t, 100.0, repo.busquedas[0].BucketKg)
}

func TestResolver_CadenaDeFallback(t *testing.T) {
	// nada responde: las tres estrategias se intentan en orden
	repo := &stubTarifaRepo{}
	r := NewTarifaResolver(repo)
	trace := pricing.NuevoTrace()

	resultado, err := r.Resolver(context.Background(), "Buenos Aires", "Ushuaia", 50, model.EntregaDomicilio, trace)
	require.NoError(t, err)
	assert.Nil(t, resultado)

	require.Len(t, repo.busquedas, 3)
	assert.Equal(t, model.EntregaDomicilio, repo.busquedas[0].TipoEntrega)
	assert.Empty(t, repo.busquedas[1].TipoEntrega)
	assert.True(t, repo.busquedas[2].SoloOrigen)
	assert.Contains(t, trace.String(), "sin tarifa cargada")
}

func TestResolver_FallbackSoloPorOrigenQuedaMarcado(t *testing.T) {
	// solo la tercera estrategia (sin destino) encuentra algo
	repo := &stubTarifaRepo{porPeso: func(b repository.BusquedaTarifaPeso) *model.TarifaPeso {
		if b.SoloOrigen {
			return tarifaDe("Buenos Aires", "Trelew", 100, "12000")
		}
		return nil
	}}
	r := NewTarifaResolver(repo)
	trace := pricing.NuevoTrace()

	resultado, err := r.Resolver(context.Background(), "Buenos Aires", "Ushuaia", 80, model.EntregaDeposito, trace)
	require.NoError(t, err)
	require.NotNil(t, resultado)

	assert.Equal(t, "Trelew", resultado.Tarifa.Destino)
	assert.Contains(t, trace.String(), "solo por origen")
}

func TestResolver_UmbralTonelada(t *testing.T) {
	banda := &model.TarifaTonelada{
		Origen: "Buenos Aires", Destino: "Comodoro Rivadavia",
		ToneladaDesdeKg: 1000, PrecioPorKg: decimal.RequireFromString("96.80"),
	}

	// exactamente 1000 kg: NO es tonelaje (el umbral es estricto)
	repo := &stubTarifaRepo{porTonelada: banda}
	r := NewTarifaResolver(repo)
	_, err := r.Resolver(context.Background(), "Buenos Aires", "Comodoro", 1000, model.EntregaDeposito, pricing.NuevoTrace())
	require.NoError(t, err)
	assert.Equal(t, 0, repo.consultasTonelada)

	// 1000.01 kg: consulta la banda y factura por kg
	repo = &stubTarifaRepo{porTonelada: banda}
	r = NewTarifaResolver(repo)
	resultado, err := r.Resolver(context.Background(), "Buenos Aires", "Comodoro", 1000.01, model.EntregaDeposito, pricing.NuevoTrace())
	require.NoError(t, err)
	require.NotNil(t, resultado)

	assert.Equal(t, 1, repo.consultasTonelada)
	assert.True(t, resultado.UsaTonelada)
	esperado := decimal.NewFromFloat(1000.01).Mul(decimal.RequireFromString("96.80"))
	assert.True(t, esperado.Equal(resultado.PrecioBase), "precio base = %s", resultado.PrecioBase)
}

func TestResolver_SinBandaDeTonelajeCaeAPeso(t *testing.T) {
	// por encima del umbral pero sin banda activa: sigue con las tarifas por peso
	repo := &stubTarifaRepo{porPeso: func(b repository.BusquedaTarifaPeso) *model.TarifaPeso {
		return tarifaDe("Buenos Aires", "Comodoro Rivadavia", 2000, "90000")
	}}
	r := NewTarifaResolver(repo)
	trace := pricing.NuevoTrace()

	resultado, err := r.Resolver(context.Background(), "Buenos Aires", "Comodoro", 1500, model.EntregaDeposito, trace)
	require.NoError(t, err)
	require.NotNil(t, resultado)

	assert.Equal(t, 1, repo.consultasTonelada)
	assert.False(t, resultado.UsaTonelada)
	assert.Contains(t, trace.String(), "no hay banda activa")
}
