package harvest

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"harvest_slots/internal/model"

	"pgregory.net/rapid"
)

func TestCalculateWinningsScenario(t *testing.T) {
	engine := NewEngine(testCatalog(t), nil)
	grid := noMatchGrid(6)
	grid[0] = []model.Symbol{"A", "A", "A", "B", "C", "D"}

	outcome, err := engine.CalculateWinnings(grid, 100, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.WinningLines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(outcome.WinningLines))
	}
	if got := outcome.WinningLines[0].WinAmount; got != 150 {
		t.Errorf("expected win 150, got %v", got)
	}
	if outcome.TotalWinAmount != 150 {
		t.Errorf("expected total 150, got %v", outcome.TotalWinAmount)
	}
}

func TestCalculateWinningsNoLines(t *testing.T) {
	engine := NewEngine(testCatalog(t), nil)

	outcome, err := engine.CalculateWinnings(noMatchGrid(6), 10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(outcome, model.ZeroOutcome()) {
		t.Errorf("expected zero outcome, got %+v", outcome)
	}
	if outcome.WinningLines == nil {
		t.Error("winning lines should be an empty slice, not nil")
	}
}

func TestCalculateWinningsSumsLines(t *testing.T) {
	engine := NewEngine(testCatalog(t), nil)
	grid := noMatchGrid(6)
	grid[0] = []model.Symbol{"A", "A", "A", "A", "A", "A"}
	for i := 1; i < 4; i++ {
		grid[i][i] = "X"
	}
	grid[0][0] = "X"

	outcome, err := engine.CalculateWinnings(grid, 10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Строка 0: X + пять A, диагональ X из четырех клеток дает два окна
	want := LineWin(10, 2, 50, 5) + 2*LineWin(10, 2, 25, 3)
	if math.Abs(outcome.TotalWinAmount-want) > 1e-9 {
		t.Errorf("expected total %v, got %v", want, outcome.TotalWinAmount)
	}
}

func TestCalculateWinningsRejectsInput(t *testing.T) {
	engine := NewEngine(testCatalog(t), nil)

	tests := []struct {
		name      string
		grid      model.Grid
		bet, mult float64
		wantErr   error
	}{
		{name: "zero bet", grid: noMatchGrid(6), bet: 0, mult: 1, wantErr: model.ErrInvalidBet},
		{name: "negative bet", grid: noMatchGrid(6), bet: -5, mult: 1, wantErr: model.ErrInvalidBet},
		{name: "nan bet", grid: noMatchGrid(6), bet: math.NaN(), mult: 1, wantErr: model.ErrInvalidBet},
		{name: "infinite bet", grid: noMatchGrid(6), bet: math.Inf(1), mult: 1, wantErr: model.ErrInvalidBet},
		{name: "multiplier below one", grid: noMatchGrid(6), bet: 1, mult: 0.5, wantErr: model.ErrInvalidMultiplier},
		{name: "infinite multiplier", grid: noMatchGrid(6), bet: 1, mult: math.Inf(1), wantErr: model.ErrInvalidMultiplier},
		{name: "payout overflow", grid: model.Grid{{"A", "A", "A"}, {"B", "C", "D"}, {"C", "D", "B"}}, bet: 1e300, mult: 1e10, wantErr: ErrPayoutOverflow},
		{name: "tiny grid", grid: model.Grid{{"A"}}, bet: 1, mult: 1, wantErr: model.ErrInvalidGridSize},
		{name: "ragged grid", grid: model.Grid{{"A", "B", "C"}, {"A"}, {"A", "B", "C"}}, bet: 1, mult: 1, wantErr: model.ErrMalformedGrid},
		{name: "unknown symbol", grid: model.Grid{{"Q", "Q", "Q"}, {"A", "B", "C"}, {"B", "C", "A"}}, bet: 1, mult: 1, wantErr: model.ErrUnknownSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := engine.CalculateWinnings(tt.grid, tt.bet, tt.mult)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if outcome.TotalWinAmount != 0 || len(outcome.WinningLines) != 0 {
				t.Errorf("expected zero outcome on error, got %+v", outcome)
			}
		})
	}
}

func TestCalculateWinningsProperties(t *testing.T) {
	engine := NewEngine(testCatalog(t), nil)

	rapid.Check(t, func(t *rapid.T) {
		grid := gridGen([]model.Symbol{"A", "B", "X"}).Draw(t, "grid")
		bet := rapid.Float64Range(0.01, 10000).Draw(t, "bet")
		mult := rapid.Float64Range(1, 5).Draw(t, "mult")

		outcome, err := engine.CalculateWinnings(grid, bet, mult)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sum := 0.0
		for _, l := range outcome.WinningLines {
			value, _ := engine.Catalog().Value(l.Symbol)
			want := bet * mult * (float64(value) / 100) * float64(l.Count)
			if math.Abs(l.WinAmount-want) > 1e-9*math.Max(1, want) {
				t.Fatalf("line %+v: expected %v, got %v", l.Positions, want, l.WinAmount)
			}
			sum += l.WinAmount
		}
		if sum != outcome.TotalWinAmount {
			t.Fatalf("total %v differs from sum of lines %v", outcome.TotalWinAmount, sum)
		}

		again, err := engine.CalculateWinnings(grid, bet, mult)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(outcome, again) {
			t.Fatal("payout is not deterministic")
		}
	})
}
