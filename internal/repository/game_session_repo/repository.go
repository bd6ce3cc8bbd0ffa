package game_session_repo

import (
	"context"
	"errors"
	"time"

	"slots_backend/internal/model"
	"slots_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "game_sessions"
	colID        = "id"
	colOwnerID   = "owner_id"
	colCredits   = "credits"
	colLastRoll  = "last_roll"
	colRollCount = "roll_count"
	colIsActive  = "is_active"
	colUpdatedAt = "updated_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewGameSessionRepository(dbc *pgxpool.Pool) repository.GameSessionRepository {
	return &repo{
		dbc: dbc,
	}
}

// Create - создает новую активную игровую сессию с указанным владельцем
// и стартовыми кредитами. ID сессии генерируется здесь
func (r *repo) Create(ctx context.Context, ownerID int, credits int) (*model.GameSession, error) {
	id := uuid.NewString()
	now := time.Now()

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colOwnerID, colCredits, colRollCount, colIsActive, colUpdatedAt).
		Values(id, ownerID, credits, 0, true, now).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	return &model.GameSession{
		ID:        id,
		OwnerID:   ownerID,
		Credits:   credits,
		RollCount: 0,
		IsActive:  true,
		UpdatedAt: now,
	}, nil
}

// Get - возвращает сессию по ID независимо от ее статуса.
// Закрытые сессии хранятся для аудита и тоже находятся
func (r *repo) Get(ctx context.Context, id string) (*model.GameSession, error) {
	// Формируем запрос
	query := sq.Select(colID, colOwnerID, colCredits, colLastRoll, colRollCount, colIsActive, colUpdatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanSession(ctx, sqlStr, args)
}

// FindActiveByOwner - возвращает последнюю обновленную активную сессию владельца.
// Закрытые сессии из поиска исключаются
func (r *repo) FindActiveByOwner(ctx context.Context, ownerID int) (*model.GameSession, error) {
	// Формируем запрос
	query := sq.Select(colID, colOwnerID, colCredits, colLastRoll, colRollCount, colIsActive, colUpdatedAt).
		From(table).
		Where(sq.Eq{colOwnerID: ownerID, colIsActive: true}).
		OrderBy(colUpdatedAt + " DESC").
		Limit(1).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanSession(ctx, sqlStr, args)
}

// Update - перезаписывает игровое состояние сессии после спина
func (r *repo) Update(ctx context.Context, id string, credits int, lastRoll [3]model.Symbol, rollCount int) error {
	rawRoll := make([]string, len(lastRoll))
	for i, s := range lastRoll {
		rawRoll[i] = string(s)
	}

	// Формируем запрос
	query := sq.Update(table).
		Set(colCredits, credits).
		Set(colLastRoll, rawRoll).
		Set(colRollCount, rollCount).
		Set(colUpdatedAt, time.Now()).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}

	return nil
}

// Deactivate - закрывает сессию. Кредиты в записи не трогаем,
// они остаются как след для аудита
func (r *repo) Deactivate(ctx context.Context, id string) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colIsActive, false).
		Set(colUpdatedAt, time.Now()).
		Where(sq.Eq{colID: id, colIsActive: true}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}

	return nil
}

// TransferOwner - переводит активную сессию от одного владельца другому.
// Возвращает false, если подходящей сессии не нашлось
func (r *repo) TransferOwner(ctx context.Context, id string, fromOwnerID, toOwnerID int) (bool, error) {
	// Формируем запрос
	query := sq.Update(table).
		Set(colOwnerID, toOwnerID).
		Set(colUpdatedAt, time.Now()).
		Where(sq.Eq{colID: id, colOwnerID: fromOwnerID, colIsActive: true}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	res, err := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

// scanSession - выполняет запрос и читает одну строку сессии
func (r *repo) scanSession(ctx context.Context, sqlStr string, args []interface{}) (*model.GameSession, error) {
	var (
		session model.GameSession
		rawRoll []string
	)

	err := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).
		QueryRow(ctx, sqlStr, args...).
		Scan(&session.ID, &session.OwnerID, &session.Credits, &rawRoll, &session.RollCount, &session.IsActive, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	for _, s := range rawRoll {
		session.LastRoll = append(session.LastRoll, model.Symbol(s))
	}

	return &session, nil
}
