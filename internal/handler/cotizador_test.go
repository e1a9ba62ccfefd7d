package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fletero/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCotizador returns a canned response and counts invocations.
type stubCotizador struct {
	resp     *dto.CotizacionResponse
	err      error
	llamadas int
}

func (s *stubCotizador) Cotizar(_ context.Context, _ dto.CotizarRequest) (*dto.CotizacionResponse, error) {
	s.llamadas++
	return s.resp, s.err
}

// redisSinServidor builds a client pointing nowhere, so every cache op fails
// and the handler takes the miss path.
func redisSinServidor() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func servidorDePrueba(svc *stubCotizador) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCotizadorHandler(svc, redisSinServidor(), time.Minute)
	r.POST("/v1/cotizador", h.Cotizar)
	return r
}

func TestCotizar_OK(t *testing.T) {
	precio := decimal.RequireFromString("980")
	svc := &stubCotizador{resp: &dto.CotizacionResponse{
		Camino:   "A",
		Etiqueta: dto.EtiquetaUI{Color: "verde"},
		Precio:   dto.PrecioBlock{Fuente: dto.FuenteContrato, Precio: &precio},
	}}
	r := servidorDePrueba(svc)

	body, _ := json.Marshal(dto.CotizarRequest{
		CUIT: "30-11111111-1", Destino: "Trelew", PesoKg: 100,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/cotizador", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.llamadas)

	var resp dto.CotizacionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A", resp.Camino)
	require.NotNil(t, resp.Precio.Precio)
	assert.True(t, precio.Equal(*resp.Precio.Precio))
}

func TestCotizar_ErrorDelServicio(t *testing.T) {
	svc := &stubCotizador{err: errors.New("db caída")}
	r := servidorDePrueba(svc)

	body, _ := json.Marshal(dto.CotizarRequest{CUIT: "30-11111111-1", Destino: "Trelew", PesoKg: 50})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/cotizador", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, svc.llamadas)
	// el detalle interno no se filtra al cliente
	assert.NotContains(t, w.Body.String(), "db caída")
}

func TestCotizar_JSONInvalido(t *testing.T) {
	svc := &stubCotizador{}
	r := servidorDePrueba(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/cotizador", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.llamadas)
}

func TestCotizar_ValidacionDeCampos(t *testing.T) {
	svc := &stubCotizador{}
	r := servidorDePrueba(svc)

	// cliente_id mal formado y peso negativo
	body := []byte(`{"cliente_id":"no-es-uuid","peso_kg":-5,"destino":"Trelew"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/cotizador", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, svc.llamadas)
	assert.Contains(t, w.Body.String(), "fields")
}
