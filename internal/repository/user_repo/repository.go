package user_repo

import (
	"context"
	"errors"
	"fmt"
	"harvest_slots/internal/model"
	"harvest_slots/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	table           = "users"
	colID           = "id"
	colBalance      = "balance"
	colTotalSpins   = "total_spins"
	colTotalWagered = "total_wagered"
	colTotalWon     = "total_won"
	colBiggestWin   = "biggest_win"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetBalance - получение баланса пользователя по его ID.
// Строка блокируется (FOR UPDATE), внутри транзакции это защищает от двойного списания
func (r *repo) GetBalance(ctx context.Context, id int) (decimal.Decimal, error) {
	// Формируем запрос
	query := sq.Select(colBalance + "::text").
		From(table).
		Where(sq.Eq{colID: id}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var raw string
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, model.ErrUserNotFound
		}
		return decimal.Zero, err
	}

	return decimal.NewFromString(raw)
}

// UpdateBalance - записывает новый баланс пользователя
func (r *repo) UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error {
	query := sq.Update(table).
		Set(colBalance, sq.Expr("?::numeric", balance.String())).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// GetPlayerData - баланс и накопленная статистика игрока
func (r *repo) GetPlayerData(ctx context.Context, id int) (*model.PlayerData, error) {
	query := sq.Select(
		colBalance+"::text",
		colTotalSpins,
		colTotalWagered+"::text",
		colTotalWon+"::text",
		colBiggestWin+"::text",
	).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var data model.PlayerData
	var balance, wagered, won, biggest string
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&balance, &data.TotalSpins, &wagered, &won, &biggest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	for _, f := range []struct {
		dst *decimal.Decimal
		raw string
	}{
		{&data.Balance, balance},
		{&data.TotalWagered, wagered},
		{&data.TotalWon, won},
		{&data.BiggestWin, biggest},
	} {
		*f.dst, err = decimal.NewFromString(f.raw)
		if err != nil {
			return nil, fmt.Errorf("parse numeric column: %w", err)
		}
	}

	return &data, nil
}

// AddSpinTotals - увеличивает счетчики игрока после спина
func (r *repo) AddSpinTotals(ctx context.Context, id int, wagered, won decimal.Decimal) error {
	query := sq.Update(table).
		Set(colTotalSpins, sq.Expr(colTotalSpins+" + 1")).
		Set(colTotalWagered, sq.Expr(colTotalWagered+" + ?::numeric", wagered.String())).
		Set(colTotalWon, sq.Expr(colTotalWon+" + ?::numeric", won.String())).
		Set(colBiggestWin, sq.Expr("GREATEST("+colBiggestWin+", ?::numeric)", won.String())).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}
