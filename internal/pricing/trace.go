package pricing

import (
	"fmt"
	"strings"
)

// Trace accumulates a human-readable explanation of every decision taken
// while pricing a request. It is part of the contract — support staff read it
// to explain a price — not incidental logging.
type Trace struct {
	entradas []string
}

func NuevoTrace() *Trace { return &Trace{} }

// Agregar appends one formatted entry.
func (t *Trace) Agregar(formato string, args ...any) {
	t.entradas = append(t.entradas, fmt.Sprintf(formato, args...))
}

// Entradas returns the accumulated entries in order.
func (t *Trace) Entradas() []string {
	if t.entradas == nil {
		return []string{}
	}
	return t.entradas
}

func (t *Trace) String() string {
	return strings.Join(t.entradas, "\n")
}
