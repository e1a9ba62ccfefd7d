package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormulaInvalida is returned when a custom pricing expression contains
// anything outside the allowed arithmetic grammar. The expression is
// user-configured stored text, so the allow-list check runs BEFORE any
// evaluation — the restricted grammar is the security property, not a
// best-effort guard.
var ErrFormulaInvalida = errors.New("fórmula inválida")

// EvaluarFormula evaluates a small arithmetic pricing expression over the
// variables kg and m3. After substituting the variables and stripping
// whitespace the remaining string may only contain digits, '.', and
// + - * / ( ). Standard precedence applies; the result is clamped to
// max(0, result) — negative prices are never returned.
func EvaluarFormula(expresion string, kg, m3 float64) (float64, error) {
	sustituida := strings.ToLower(expresion)
	sustituida = strings.ReplaceAll(sustituida, "kg", formatearValor(kg))
	sustituida = strings.ReplaceAll(sustituida, "m3", formatearValor(m3))
	sustituida = strings.Join(strings.Fields(sustituida), "")

	if sustituida == "" {
		return 0, fmt.Errorf("%w: expresión vacía", ErrFormulaInvalida)
	}
	for _, r := range sustituida {
		if !esCaracterPermitido(r) {
			return 0, fmt.Errorf("%w: carácter no permitido %q", ErrFormulaInvalida, r)
		}
	}

	p := &parserFormula{entrada: sustituida}
	resultado, err := p.expresion()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.entrada) {
		return 0, fmt.Errorf("%w: símbolo inesperado en la posición %d", ErrFormulaInvalida, p.pos)
	}
	if resultado < 0 {
		return 0, nil
	}
	return resultado, nil
}

func formatearValor(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func esCaracterPermitido(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	switch r {
	case '.', '+', '-', '*', '/', '(', ')':
		return true
	}
	return false
}

// parserFormula is a hand-written recursive-descent parser over the closed
// grammar. Deliberately NOT a general-purpose evaluator:
//
//	expresion := termino (('+'|'-') termino)*
//	termino   := factor (('*'|'/') factor)*
//	factor    := numero | '(' expresion ')' | ('+'|'-') factor
type parserFormula struct {
	entrada string
	pos     int
}

func (p *parserFormula) actual() byte {
	if p.pos >= len(p.entrada) {
		return 0
	}
	return p.entrada[p.pos]
}

func (p *parserFormula) expresion() (float64, error) {
	izq, err := p.termino()
	if err != nil {
		return 0, err
	}
	for {
		switch p.actual() {
		case '+':
			p.pos++
			der, err := p.termino()
			if err != nil {
				return 0, err
			}
			izq += der
		case '-':
			p.pos++
			der, err := p.termino()
			if err != nil {
				return 0, err
			}
			izq -= der
		default:
			return izq, nil
		}
	}
}

func (p *parserFormula) termino() (float64, error) {
	izq, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.actual() {
		case '*':
			p.pos++
			der, err := p.factor()
			if err != nil {
				return 0, err
			}
			izq *= der
		case '/':
			p.pos++
			der, err := p.factor()
			if err != nil {
				return 0, err
			}
			if der == 0 {
				return 0, fmt.Errorf("%w: división por cero", ErrFormulaInvalida)
			}
			izq /= der
		default:
			return izq, nil
		}
	}
}

func (p *parserFormula) factor() (float64, error) {
	switch p.actual() {
	case '+':
		p.pos++
		return p.factor()
	case '-':
		p.pos++
		v, err := p.factor()
		return -v, err
	case '(':
		p.pos++
		v, err := p.expresion()
		if err != nil {
			return 0, err
		}
		if p.actual() != ')' {
			return 0, fmt.Errorf("%w: falta paréntesis de cierre", ErrFormulaInvalida)
		}
		p.pos++
		return v, nil
	}
	return p.numero()
}

func (p *parserFormula) numero() (float64, error) {
	inicio := p.pos
	for p.pos < len(p.entrada) {
		c := p.entrada[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if inicio == p.pos {
		return 0, fmt.Errorf("%w: se esperaba un número en la posición %d", ErrFormulaInvalida, inicio)
	}
	v, err := strconv.ParseFloat(p.entrada[inicio:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: número mal formado %q", ErrFormulaInvalida, p.entrada[inicio:p.pos])
	}
	return v, nil
}
