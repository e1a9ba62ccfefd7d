package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluarFormula_Basica(t *testing.T) {
	v, err := EvaluarFormula("kg * 120.5", 100, 0)
	require.NoError(t, err)
	assert.InDelta(t, 12050, v, 0.001)
}

func TestEvaluarFormula_Precedencia(t *testing.T) {
	v, err := EvaluarFormula("kg * 2 + m3 * 100", 10, 3)
	require.NoError(t, err)
	assert.InDelta(t, 320, v, 0.001)

	v, err = EvaluarFormula("(kg + m3) * 2", 10, 3)
	require.NoError(t, err)
	assert.InDelta(t, 26, v, 0.001)
}

func TestEvaluarFormula_MayusculasYEspacios(t *testing.T) {
	v, err := EvaluarFormula("  KG * 10  ", 5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 50, v, 0.001)
}

func TestEvaluarFormula_ResultadoNegativoSeTruncaACero(t *testing.T) {
	// con kg=100 y m3=1: 9680 - 48400 < 0
	v, err := EvaluarFormula("kg * 96.8 - m3 * 48400", 100, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestEvaluarFormula_CaracteresNoPermitidos(t *testing.T) {
	casos := []string{
		"kg; DROP TABLE tarifas",
		"kg * precio",
		"__import__",
		"kg ** 2 | 3 & x",
	}
	for _, expr := range casos {
		_, err := EvaluarFormula(expr, 10, 1)
		assert.ErrorIs(t, err, ErrFormulaInvalida, "expresión %q", expr)
	}
}

func TestEvaluarFormula_MalFormada(t *testing.T) {
	for _, expr := range []string{"", "kg *", "(kg + 1", "1..2 + kg", "kg)"} {
		_, err := EvaluarFormula(expr, 10, 1)
		assert.ErrorIs(t, err, ErrFormulaInvalida, "expresión %q", expr)
	}
}

func TestEvaluarFormula_DivisionPorCero(t *testing.T) {
	_, err := EvaluarFormula("kg / m3", 10, 0)
	assert.ErrorIs(t, err, ErrFormulaInvalida)
}

func TestEvaluarFormula_UnariosYParentesis(t *testing.T) {
	v, err := EvaluarFormula("-kg + 30", 10, 0)
	require.NoError(t, err)
	assert.InDelta(t, 20, v, 0.001)

	v, err = EvaluarFormula("kg * (m3 + 0.5) / 2", 8, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 8, v, 0.001)
}

func TestEvaluarFormula_Determinista(t *testing.T) {
	a, err := EvaluarFormula("kg * 96.8 + m3 * 123.4", 777, 2.5)
	require.NoError(t, err)
	b, err := EvaluarFormula("kg * 96.8 + m3 * 123.4", 777, 2.5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
