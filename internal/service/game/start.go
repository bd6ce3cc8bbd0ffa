package game

import (
	"context"
	"errors"
	"log"

	"slots_backend/internal/model"
)

// Start - получение или создание игровой сессии для владельца.
// Порядок: возобновление по подсказке -> последняя активная сессия
// зарегистрированного пользователя -> создание новой.
// Гость без подсказки всегда получает новую сессию
func (s *serv) Start(ctx context.Context, ownerID int, sessionIDHint string) (*model.StartResult, error) {
	isGuest := ownerID == model.GuestUserID

	if isGuest {
		// Гостевая запись создается лениво и best-effort:
		// если хранилище недоступно, игрок все равно идет дальше
		if err := s.userRepo.EnsureGuest(ctx); err != nil {
			log.Printf("failed to ensure guest user: %v", err)
		}
	} else {
		// Владелец должен существовать
		if _, err := s.userRepo.GetUserByID(ctx, ownerID); err != nil {
			return nil, err
		}
	}

	// Идемпотентное возобновление по подсказке: сессия должна быть
	// активна и принадлежать вызывающему
	if sessionIDHint != "" {
		sess, err := s.sessionRepo.Get(ctx, sessionIDHint)
		if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
			return nil, err
		}
		if err == nil && sess.IsActive && sess.OwnerID == ownerID {
			return &model.StartResult{
				SessionID: sess.ID,
				Credits:   sess.Credits,
			}, nil
		}
	}

	// Зарегистрированный пользователь продолжает последнюю активную сессию
	if !isGuest {
		sess, err := s.sessionRepo.FindActiveByOwner(ctx, ownerID)
		if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
			return nil, err
		}
		if err == nil {
			return &model.StartResult{
				SessionID: sess.ID,
				Credits:   sess.Credits,
			}, nil
		}
	}

	// Инициализируем структуру для результата
	var res *model.StartResult

	// Начало транзакции: перенос баланса в сессию и создание сессии
	// должны пройти как единое целое
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		credits := s.gameCfg.StartingCredits()

		if !isGuest {
			balance, err := s.userRepo.GetBalance(txCtx, ownerID)
			if err != nil {
				return err
			}

			// Пустой баланс заменяем стартовыми кредитами,
			// иначе в сессию уходит весь баланс
			if balance > 0 {
				credits = balance
			}

			// Баланс обнуляется: ценность теперь живет в сессии
			if err := s.userRepo.SetBalance(txCtx, ownerID, 0); err != nil {
				return err
			}
		}

		sess, err := s.sessionRepo.Create(txCtx, ownerID, credits)
		if err != nil {
			return err
		}

		res = &model.StartResult{
			SessionID: sess.ID,
			Credits:   sess.Credits,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
