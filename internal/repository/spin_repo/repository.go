package spin_repo

import (
	"context"
	"harvest_slots/internal/model"
	"harvest_slots/internal/repository"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "harvest_spins"
	colID         = "id"
	colUserID     = "user_id"
	colBet        = "bet"
	colMultiplier = "multiplier"
	colTotalWin   = "total_win"
	colLines      = "lines"
	colGrid       = "grid"
	colCreatedAt  = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSpinRepository(dbc *pgxpool.Pool) repository.SpinRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateSpin - сохраняет запись о спине. Пустой ID и время заполняются здесь
func (r *repo) CreateSpin(ctx context.Context, rec *model.SpinRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := sq.Insert(table).
		Columns(colID, colUserID, colBet, colMultiplier, colTotalWin, colLines, colGrid, colCreatedAt).
		Values(
			rec.ID,
			rec.UserID,
			rec.Bet,
			rec.Multiplier,
			rec.TotalWin,
			sq.Expr("?::jsonb", toLineRows(rec.Lines)),
			sq.Expr("?::jsonb", rec.Grid),
			rec.CreatedAt,
		).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// ListSpins - последние спины игрока, новые первыми
func (r *repo) ListSpins(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error) {
	query := sq.Select(colID, colUserID, colBet, colMultiplier, colTotalWin, colLines, colGrid, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.SpinRecord, 0, limit)
	for rows.Next() {
		var (
			rec   model.SpinRecord
			lines []lineRow
		)
		err = rows.Scan(&rec.ID, &rec.UserID, &rec.Bet, &rec.Multiplier, &rec.TotalWin, &lines, &rec.Grid, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		rec.Lines = fromLineRows(lines)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// lineRow - представление выигрышной линии в jsonb
type lineRow struct {
	Positions [][2]int `json:"positions"`
	Symbol    string   `json:"symbol"`
	Count     int      `json:"count"`
	Direction string   `json:"direction"`
	WinAmount float64  `json:"win_amount"`
}

func toLineRows(lines []model.WinLine) []lineRow {
	rows := make([]lineRow, len(lines))
	for i, l := range lines {
		positions := make([][2]int, len(l.Positions))
		for j, p := range l.Positions {
			positions[j] = [2]int{p.Row, p.Col}
		}
		rows[i] = lineRow{
			Positions: positions,
			Symbol:    string(l.Symbol),
			Count:     l.Count,
			Direction: string(l.Direction),
			WinAmount: l.WinAmount,
		}
	}
	return rows
}

func fromLineRows(rows []lineRow) []model.WinLine {
	lines := make([]model.WinLine, len(rows))
	for i, r := range rows {
		positions := make([]model.Position, len(r.Positions))
		for j, p := range r.Positions {
			positions[j] = model.Position{Row: p[0], Col: p[1]}
		}
		lines[i] = model.WinLine{
			Positions: positions,
			Symbol:    model.Symbol(r.Symbol),
			Count:     r.Count,
			Direction: model.Direction(r.Direction),
			WinAmount: r.WinAmount,
		}
	}
	return lines
}
