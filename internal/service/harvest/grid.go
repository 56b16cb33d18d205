package harvest

import (
	"harvest_slots/internal/model"
	servModel "harvest_slots/internal/service/harvest/model"
	"math/rand"
)

// MinGridSize Меньше трех клеток линия не соберется
const MinGridSize = 3

// RNG - источник случайных чисел. IntN возвращает число из [0, n)
type RNG interface {
	IntN(n int) int
}

// globalRNG - потокобезопасный генератор пакета math/rand/v2
type globalRNG struct{}

func (globalRNG) IntN(n int) int {
	return rand.Intn(n)
}

// Engine - генерация поля, поиск линий и расчет выплат над одним каталогом
type Engine struct {
	catalog *servModel.Catalog
	active  []model.Symbol
	rng     RNG
}

// NewEngine Если rng == nil, используется math/rand/v2
func NewEngine(catalog *servModel.Catalog, rng RNG) *Engine {
	if rng == nil {
		rng = globalRNG{}
	}
	return &Engine{
		catalog: catalog,
		active:  catalog.Active(),
		rng:     rng,
	}
}

func (e *Engine) Catalog() *servModel.Catalog {
	return e.catalog
}

// GenerateSymbol - равновероятный выбор одного символа из активного набора
func (e *Engine) GenerateSymbol() model.Symbol {
	return e.active[e.rng.IntN(len(e.active))]
}

// GenerateGrid заполняет поле n×n независимыми выборками с возвращением
func (e *Engine) GenerateGrid(n int) (model.Grid, error) {
	if n < MinGridSize {
		return nil, model.ErrInvalidGridSize
	}

	grid := make(model.Grid, n)
	for r := range grid {
		grid[r] = make([]model.Symbol, n)
		for c := range grid[r] {
			grid[r][c] = e.GenerateSymbol()
		}
	}
	return grid, nil
}
