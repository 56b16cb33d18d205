package harvest

import "harvest_slots/internal/model"

// minRun Минимальная длина выигрышной последовательности
const minRun = 3

// FindWinningLines ищет выигрышные линии на квадратном поле.
// Порядок результата: строки, столбцы, диагонали ↘, диагонали ↙.
// Строки и столбцы дают по одной линии на каждую серию длиной от 3.
// Диагонали проверяются только окнами ровно из 3 клеток, пересекающиеся
// окна не объединяются и не дедуплицируются.
func FindWinningLines(grid model.Grid) []model.WinLine {
	lines := make([]model.WinLine, 0)
	n := grid.Size()

	for r := 0; r < n; r++ {
		lines = scanRuns(lines, len(grid[r]), model.DirectionHorizontal, func(i int) model.Position {
			return model.Position{Row: r, Col: i}
		}, grid)
	}

	for c := 0; c < n; c++ {
		lines = scanRuns(lines, n, model.DirectionVertical, func(i int) model.Position {
			return model.Position{Row: i, Col: c}
		}, grid)
	}

	for r := 0; r+minRun <= n; r++ {
		for c := 0; c+minRun <= n; c++ {
			lines = appendWindow(lines, grid, model.DirectionDiagonal, r, c, 1)
		}
	}

	for r := 0; r+minRun <= n; r++ {
		for c := minRun - 1; c < n; c++ {
			lines = appendWindow(lines, grid, model.DirectionAntiDiagonal, r, c, -1)
		}
	}

	return lines
}

// scanRuns проходит length клеток вдоль at и добавляет все серии длиной >= minRun
func scanRuns(lines []model.WinLine, length int, dir model.Direction, at func(i int) model.Position, grid model.Grid) []model.WinLine {
	if length == 0 {
		return lines
	}

	symbolAt := func(i int) model.Symbol {
		p := at(i)
		return grid[p.Row][p.Col]
	}

	start := 0
	for i := 1; i <= length; i++ {
		// Серия закончилась: сменился символ или кончилась линия
		if i < length && symbolAt(i) == symbolAt(start) {
			continue
		}
		if count := i - start; count >= minRun {
			positions := make([]model.Position, 0, count)
			for j := start; j < i; j++ {
				positions = append(positions, at(j))
			}
			lines = append(lines, model.WinLine{
				Positions: positions,
				Symbol:    symbolAt(start),
				Count:     count,
				Direction: dir,
			})
		}
		start = i
	}
	return lines
}

// appendWindow проверяет диагональное окно из трех клеток от (r, c).
// step задает сдвиг столбца: +1 для ↘, -1 для ↙
func appendWindow(lines []model.WinLine, grid model.Grid, dir model.Direction, r, c, step int) []model.WinLine {
	s := grid[r][c]
	for k := 1; k < minRun; k++ {
		if grid[r+k][c+k*step] != s {
			return lines
		}
	}

	positions := make([]model.Position, minRun)
	for k := range positions {
		positions[k] = model.Position{Row: r + k, Col: c + k*step}
	}
	return append(lines, model.WinLine{
		Positions: positions,
		Symbol:    s,
		Count:     minRun,
		Direction: dir,
	})
}
