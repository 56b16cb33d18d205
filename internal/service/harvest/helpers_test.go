package harvest

import (
	"context"
	"sync"
	"testing"

	"harvest_slots/internal/model"
	servModel "harvest_slots/internal/service/harvest/model"
)

// Алфавит тестового каталога: A..F плюс X, который не встречается в базовом поле
var testSymbols = []model.Symbol{"A", "B", "C", "D", "E", "F", "X"}

func testCatalog(t testing.TB) *servModel.Catalog {
	t.Helper()
	c, err := servModel.NewCatalog([]servModel.SymbolDef{
		{ID: "A", Value: 50},
		{ID: "B", Value: 40},
		{ID: "C", Value: 30},
		{ID: "D", Value: 20},
		{ID: "E", Value: 10},
		{ID: "F", Value: 15},
		{ID: "X", Value: 25},
	}, nil)
	if err != nil {
		t.Fatalf("test catalog: %v", err)
	}
	return c
}

// noMatchGrid - поле без единой выигрышной линии: cell = (2r + c) mod 6
func noMatchGrid(n int) model.Grid {
	g := make(model.Grid, n)
	for r := range g {
		g[r] = make([]model.Symbol, n)
		for c := range g[r] {
			g[r][c] = testSymbols[(2*r+c)%6]
		}
	}
	return g
}

// seqRNG отдает заранее заданную последовательность индексов по кругу
type seqRNG struct {
	mtx  sync.Mutex
	vals []int
	i    int
}

func (s *seqRNG) IntN(n int) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

// rngForGrids строит RNG, который воспроизводит указанные поля по порядку
func rngForGrids(t testing.TB, grids ...model.Grid) *seqRNG {
	t.Helper()
	index := make(map[model.Symbol]int, len(testSymbols))
	for i, s := range testSymbols {
		index[s] = i
	}
	rng := &seqRNG{}
	for _, g := range grids {
		for _, row := range g {
			for _, s := range row {
				i, ok := index[s]
				if !ok {
					t.Fatalf("symbol %q is not in the test alphabet", s)
				}
				rng.vals = append(rng.vals, i)
			}
		}
	}
	return rng
}

// memLedger - журнал баланса в памяти
type memLedger struct {
	mtx       sync.Mutex
	balance   float64
	debits    []float64
	credits   []float64
	debitErr  error
	creditErr error
}

func (l *memLedger) Debit(_ context.Context, amount float64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.debitErr != nil {
		return l.debitErr
	}
	if l.balance < amount {
		return model.ErrInsufficientBalance
	}
	l.balance -= amount
	l.debits = append(l.debits, amount)
	return nil
}

func (l *memLedger) Credit(_ context.Context, amount float64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.creditErr != nil {
		return l.creditErr
	}
	l.balance += amount
	l.credits = append(l.credits, amount)
	return nil
}

func (l *memLedger) snapshot() (float64, []float64, []float64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.balance, append([]float64(nil), l.debits...), append([]float64(nil), l.credits...)
}
