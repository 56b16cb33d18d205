package model

import (
	"fmt"
	"harvest_slots/internal/model"
)

// SymbolDef - описание символа каталога и его ценность (вес выплаты из 100)
type SymbolDef struct {
	ID    model.Symbol
	Value int
}

// DefaultSymbols Полный каталог символов урожая
var DefaultSymbols = []SymbolDef{
	{ID: "wheat", Value: 10},
	{ID: "carrot", Value: 12},
	{ID: "potato", Value: 12},
	{ID: "onion", Value: 14},
	{ID: "beet", Value: 15},
	{ID: "cabbage", Value: 16},
	{ID: "tomato", Value: 18},
	{ID: "pepper", Value: 20},
	{ID: "corn", Value: 22},
	{ID: "apple", Value: 25},
	{ID: "pear", Value: 26},
	{ID: "plum", Value: 28},
	{ID: "cherry", Value: 30},
	{ID: "grape", Value: 34},
	{ID: "strawberry", Value: 38},
	{ID: "pumpkin", Value: 42},
	{ID: "sunflower", Value: 46},
	{ID: "watermelon", Value: 50},
}

// DefaultActive Символы, которые по умолчанию выпадают на поле
var DefaultActive = []model.Symbol{
	"wheat", "carrot", "tomato", "corn", "apple", "cherry", "pumpkin", "watermelon",
}

// Catalog - неизменяемый каталог символов.
// symbols хранит порядок объявления, active - подмножество для генерации
type Catalog struct {
	symbols []model.Symbol
	values  map[model.Symbol]int
	active  []model.Symbol
}

// NewCatalog собирает каталог и проверяет его целостность
func NewCatalog(defs []SymbolDef, active []model.Symbol) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no symbols", model.ErrInvalidCatalog)
	}

	c := &Catalog{
		symbols: make([]model.Symbol, 0, len(defs)),
		values:  make(map[model.Symbol]int, len(defs)),
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: empty symbol id", model.ErrInvalidCatalog)
		}
		if _, dup := c.values[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %q", model.ErrInvalidCatalog, d.ID)
		}
		if d.Value <= 0 {
			return nil, fmt.Errorf("%w: symbol %q has non-positive value %d", model.ErrInvalidCatalog, d.ID, d.Value)
		}
		c.symbols = append(c.symbols, d.ID)
		c.values[d.ID] = d.Value
	}

	// Пустой список активных означает "весь каталог"
	if len(active) == 0 {
		c.active = append([]model.Symbol(nil), c.symbols...)
		return c, nil
	}

	seen := make(map[model.Symbol]struct{}, len(active))
	for _, s := range active {
		if _, ok := c.values[s]; !ok {
			return nil, fmt.Errorf("%w: active symbol %q is not declared", model.ErrInvalidCatalog, s)
		}
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: active symbol %q listed twice", model.ErrInvalidCatalog, s)
		}
		seen[s] = struct{}{}
		c.active = append(c.active, s)
	}

	return c, nil
}

// DefaultCatalog - каталог по умолчанию
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultSymbols, DefaultActive)
	if err != nil {
		panic("default catalog is broken: " + err.Error())
	}
	return c
}

// Symbols - все символы в порядке объявления
func (c *Catalog) Symbols() []model.Symbol {
	return append([]model.Symbol(nil), c.symbols...)
}

// Active - символы, участвующие в генерации поля
func (c *Catalog) Active() []model.Symbol {
	return append([]model.Symbol(nil), c.active...)
}

func (c *Catalog) Value(s model.Symbol) (int, bool) {
	v, ok := c.values[s]
	return v, ok
}

// IsActive - входит ли символ в активное подмножество
func (c *Catalog) IsActive(s model.Symbol) bool {
	for _, a := range c.active {
		if a == s {
			return true
		}
	}
	return false
}
