package entity

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unidades de medida de ingredientes.
const (
	UnitGrams       = "GRAMS"
	UnitLiters      = "LITERS"
	UnitUnits       = "UNITS"
	UnitMilliliters = "MILLILITERS"
)

// IsValidUnit indica si la unidad es una de las soportadas.
func IsValidUnit(unit string) bool {
	switch unit {
	case UnitGrams, UnitLiters, UnitUnits, UnitMilliliters:
		return true
	}
	return false
}

// Ingredient materia prima con stock controlado que consumen las recetas.
// Stock es la relación uno a uno opcional; nil significa que el ingrediente no tiene stock configurado.
// La unidad no debe cambiar una vez existen movimientos.
type Ingredient struct {
	ID           string
	RestaurantID string
	WarehouseID  string
	Name         string
	Unit         string
	Stock        *Stock
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // baja lógica; los movimientos se conservan
}

// HasStock indica si el ingrediente tiene su fila de stock.
func (i *Ingredient) HasStock() bool { return i != nil && i.Stock != nil }

var foldCaser = cases.Fold()

// NormalizeName devuelve la clave de unicidad del nombre: sin acentos, sin espacios
// sobrantes y con case folding ("  Açúcar " y "acucar" colisionan).
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		out = strings.TrimSpace(name)
	}
	return foldCaser.String(strings.Join(strings.Fields(out), " "))
}
