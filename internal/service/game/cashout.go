package game

import (
	"context"

	"slots_backend/internal/model"
)

// Cashout - вывод кредитов сессии на баланс владельца.
// callerUserID передается опционально (model.GuestUserID = не передан)
// и служит только для проверки принадлежности сессии
func (s *serv) Cashout(ctx context.Context, sessionID string, callerUserID int) (*model.CashoutResult, error) {
	// Вывод не должен гоняться с бросками по той же сессии
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	// Инициализируем структуру для результата
	var res *model.CashoutResult

	// Начало транзакции: начисление на баланс и закрытие сессии
	// проходят как единое целое, частичное применение недопустимо
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		sess, err := s.sessionRepo.Get(txCtx, sessionID)
		if err != nil {
			return err
		}

		// Повторный вывод по закрытой сессии выглядит как not found
		if !sess.IsActive {
			return model.ErrSessionNotFound
		}

		// Гостю выводить некуда: бизнес-правило, сначала регистрация
		if sess.OwnerID == model.GuestUserID {
			return model.ErrGuestCashout
		}

		if callerUserID != model.GuestUserID && callerUserID != sess.OwnerID {
			return model.ErrOwnerMismatch
		}

		if sess.RollCount < s.gameCfg.RequiredRolls() {
			return model.ErrInsufficientRolls
		}

		if _, err := s.userRepo.AddToBalance(txCtx, sess.OwnerID, sess.Credits); err != nil {
			return err
		}

		// Кредиты в записи сессии не обнуляем - это след для аудита,
		// повторно потратить их нельзя, сессия закрыта
		if err := s.sessionRepo.Deactivate(txCtx, sessionID); err != nil {
			return err
		}

		res = &model.CashoutResult{
			SessionID:  sessionID,
			CreditsOut: sess.Credits,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
