package game

import (
	"math/rand"
	"sync"

	"slots_backend/internal/config"
	"slots_backend/internal/model"
)

// Roller - генератор результатов вращения барабанов.
// Источник случайности инжектится снаружи, чтобы в тестах
// последовательность исходов была воспроизводимой
type Roller struct {
	// rand.Rand не потокобезопасен, защищаем мьютексом
	mtx   sync.Mutex
	rnd   *rand.Rand
	tiers []config.BiasTier
}

func NewRoller(src rand.Source, tiers []config.BiasTier) *Roller {
	return &Roller{
		rnd:   rand.New(src),
		tiers: tiers,
	}
}

// Roll - розыгрыш трех символов с учетом текущих кредитов сессии.
// Три равномерных выбора из алфавита; если выпали три одинаковых,
// с вероятностью из текущей ступени третий символ перебивается
// другим, гарантированно ломая комбинацию
func (r *Roller) Roll(currentCredits int) [3]model.Symbol {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var symbols [3]model.Symbol
	for i := range symbols {
		symbols[i] = r.randomSymbol()
	}

	isWin := symbols[0] == symbols[1] && symbols[1] == symbols[2]

	if isWin && r.shouldReRoll(currentCredits) {
		// Перебиваем третий символ, пока не станет отличным от выпавшего
		newSymbol := r.randomSymbol()
		for newSymbol == symbols[0] {
			newSymbol = r.randomSymbol()
		}
		symbols[2] = newSymbol
	}

	return symbols
}

// randomSymbol - равномерный выбор символа из алфавита
func (r *Roller) randomSymbol() model.Symbol {
	return model.Symbols[r.rnd.Intn(len(model.Symbols))]
}

// shouldReRoll - решает, перебивать ли выигрышную комбинацию.
// Ступени отсортированы по возрастанию порога, действует последняя
// ступень, чей порог не превышает текущие кредиты
func (r *Roller) shouldReRoll(credits int) bool {
	probability := 0.0
	for _, tier := range r.tiers {
		if credits >= tier.FromCredits {
			probability = tier.Probability
		}
	}

	if probability <= 0 {
		return false
	}

	return r.rnd.Float64() < probability
}
