package pricing

import "strings"

// Spelling/abbreviation variants under which each plaza appears in stored
// tariffs. Data entry over the years was not consistent, so every tariff
// lookup is broadened with the full variant group. Many-to-many: each variant
// resolves to the same group.
//
// The table is built once at init and never mutated afterwards, so it is
// shared across concurrent requests without synchronization.
var gruposAlias = [][]string{
	{"Buenos Aires", "CABA", "Bs As", "Bs. As.", "Capital Federal", "Capital"},
	{"Comodoro Rivadavia", "Comodoro", "C. Rivadavia", "Com. Rivadavia"},
	{"Trelew", "TW"},
	{"Puerto Madryn", "Madryn", "Pto Madryn", "Pto. Madryn"},
	{"Rio Gallegos", "Río Gallegos", "Gallegos"},
	{"Neuquen", "Neuquén", "NQN"},
	{"Bahia Blanca", "Bahía Blanca", "B. Blanca"},
	{"Cordoba", "Córdoba", "CBA"},
	{"Rosario", "ROS"},
	{"Caleta Olivia", "Caleta"},
}

var indiceAlias map[string][]string

func init() {
	indiceAlias = make(map[string][]string)
	for _, grupo := range gruposAlias {
		for _, variante := range grupo {
			indiceAlias[normalizarCiudad(variante)] = grupo
		}
	}
}

func normalizarCiudad(nombre string) string {
	return strings.ToLower(strings.TrimSpace(nombre))
}

// ExpandirAlias returns the ordered list of known spelling variants for a
// free-text place name. Every stored spelling of the group is always present
// (the SQL IN lookups are case-sensitive, so dropping one hides tariffs); the
// raw input leads only when it is not itself a stored spelling. Unmapped names
// degrade to a single-element list. Never fails.
func ExpandirAlias(nombre string) []string {
	limpio := strings.TrimSpace(nombre)
	if limpio == "" {
		return []string{""}
	}

	grupo, ok := indiceAlias[normalizarCiudad(limpio)]
	if !ok {
		return []string{limpio}
	}

	variantes := make([]string, 0, len(grupo)+1)
	almacenada := false
	for _, v := range grupo {
		if v == limpio {
			almacenada = true
			break
		}
	}
	if !almacenada {
		variantes = append(variantes, limpio)
	}
	return append(variantes, grupo...)
}

// MismaCiudad reports whether two free-text place names refer to the same
// plaza, comparing their alias-expanded variant sets case-insensitively.
func MismaCiudad(a, b string) bool {
	if normalizarCiudad(a) == normalizarCiudad(b) {
		return true
	}
	for _, va := range ExpandirAlias(a) {
		for _, vb := range ExpandirAlias(b) {
			if strings.EqualFold(va, vb) {
				return true
			}
		}
	}
	return false
}
