package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Symbol - идентификатор символа на поле
type Symbol string

// Position - координаты клетки поля (строка, столбец)
type Position struct {
	Row int
	Col int
}

// Direction - направление, вдоль которого найдена выигрышная линия
type Direction string

const (
	DirectionHorizontal   Direction = "horizontal"
	DirectionVertical     Direction = "vertical"
	DirectionDiagonal     Direction = "diagonal"      // сверху-слева вниз-вправо
	DirectionAntiDiagonal Direction = "anti_diagonal" // сверху-справа вниз-влево
)

// Grid - квадратное поле N×N, индексация grid[row][col]
type Grid [][]Symbol

// Size - размер стороны поля
func (g Grid) Size() int {
	return len(g)
}

// Clone - глубокая копия поля. Наружу всегда отдаем копии
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Symbol(nil), row...)
	}
	return out
}

// Validate проверяет, что поле квадратное и не меньше minSize
func (g Grid) Validate(minSize int) error {
	n := len(g)
	if n < minSize {
		return ErrInvalidGridSize
	}
	for _, row := range g {
		if len(row) != n {
			return ErrMalformedGrid
		}
	}
	return nil
}

type WinLine struct {
	Positions []Position
	Symbol    Symbol
	Count     int
	Direction Direction
	WinAmount float64
}

// SpinOutcome - итог спина. После создания не изменяется
type SpinOutcome struct {
	TotalWinAmount float64
	WinningLines   []WinLine
}

// ZeroOutcome - пустой итог: {0, []}
func ZeroOutcome() SpinOutcome {
	return SpinOutcome{WinningLines: []WinLine{}}
}

// Clone - глубокая копия итога вместе с линиями и их позициями
func (o SpinOutcome) Clone() SpinOutcome {
	out := SpinOutcome{
		TotalWinAmount: o.TotalWinAmount,
		WinningLines:   make([]WinLine, len(o.WinningLines)),
	}
	for i, l := range o.WinningLines {
		l.Positions = append([]Position(nil), l.Positions...)
		out.WinningLines[i] = l
	}
	return out
}

type SpinRequest struct {
	Bet        float64
	Multiplier float64
	AutoSpin   bool
}

type SpinResult struct {
	Grid     Grid
	Outcome  SpinOutcome
	Balance  decimal.Decimal
	Rejected bool // автомат был занят предыдущим спином
}

type PlayerData struct {
	Balance      decimal.Decimal
	TotalSpins   int64
	TotalWagered decimal.Decimal
	TotalWon     decimal.Decimal
	BiggestWin   decimal.Decimal
}

// SpinRecord - запись о спине для истории игрока
type SpinRecord struct {
	ID         uuid.UUID
	UserID     int
	Bet        float64
	Multiplier float64
	TotalWin   float64
	Lines      []WinLine
	Grid       Grid
	CreatedAt  time.Time
}

// HouseStats - общая статистика по всем спинам
type HouseStats struct {
	TotalSpins  int
	TotalBet    float64
	TotalPayout float64
	CurrentRTP  float64
	WindowRTP   float64
	WindowSize  int
	WindowFill  int
}

// SymbolInfo - символ каталога и его ценность для клиента
type SymbolInfo struct {
	ID    Symbol
	Value int
}

// SpinEvent - завершенный спин игрока для подписчиков (websocket и т.п.)
type SpinEvent struct {
	UserID     int
	Grid       Grid
	Outcome    SpinOutcome
	Bet        float64
	Multiplier float64
	At         time.Time
}
