package game

import (
	"context"

	"slots_backend/internal/model"
)

// Roll - один бросок: списание стоимости, розыгрыш символов,
// начисление выигрыша и запись нового состояния сессии
func (s *serv) Roll(ctx context.Context, sessionID string) (*model.RollResult, error) {
	// Два одновременных броска по одной сессии не должны
	// перемешать свои read-modify-write циклы
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	// Инициализируем структуру для результата
	var res *model.RollResult

	// Начало транзакции где выполняется процесс броска
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		sess, err := s.sessionRepo.Get(txCtx, sessionID)
		if err != nil {
			return err
		}

		// Закрытая сессия для игры неотличима от несуществующей
		if !sess.IsActive {
			return model.ErrSessionNotFound
		}

		if sess.Credits < s.gameCfg.RollCost() {
			return model.ErrInsufficientCredits
		}

		// Сначала списание, потом розыгрыш: кредиты после броска
		// не уходят в минус при любом исходе
		credits := sess.Credits - s.gameCfg.RollCost()

		// КЛЮЧЕВОЙ ВЫЗОВ
		// Розыгрыш идет по кредитам уже после списания
		symbols := s.roller.Roll(credits)

		winAmount := model.Payout(symbols)
		if winAmount > 0 {
			credits += winAmount
		}

		if err := s.sessionRepo.Update(txCtx, sessionID, credits, symbols, sess.RollCount+1); err != nil {
			return err
		}

		res = &model.RollResult{
			SessionID: sessionID,
			Symbols:   symbols,
			Credits:   credits,
			Win:       winAmount > 0,
			WinAmount: winAmount,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
