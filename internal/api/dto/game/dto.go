package game

type StartRequest struct {
	UserID    int    `json:"user_id"`              // 0 - гость
	SessionID string `json:"session_id,omitempty"` // Подсказка для возобновления сессии
}

type StartResponse struct {
	SessionID string `json:"session_id"` // ID игровой сессии
	Credits   int    `json:"credits"`    // Кредиты в сессии
}

type RollRequest struct {
	SessionID string `json:"session_id"` // ID игровой сессии
}

type RollResponse struct {
	SessionID string   `json:"session_id"`           // ID игровой сессии
	Symbols   []string `json:"symbols"`              // Три выпавших символа
	Credits   int      `json:"credits"`              // Кредиты после броска
	Win       bool     `json:"win"`                  // Была ли выигрышная комбинация
	WinAmount int      `json:"win_amount,omitempty"` // Размер выигрыша
}

type CashoutRequest struct {
	SessionID string `json:"session_id"`        // ID игровой сессии
	UserID    int    `json:"user_id,omitempty"` // Опциональная проверка владельца
}

type CashoutResponse struct {
	SessionID  string `json:"session_id"`  // ID закрытой сессии
	CreditsOut int    `json:"credits_out"` // Сколько ушло на баланс
	Success    bool   `json:"success"`
}

type ProfileRequest struct {
	UserID int `json:"user_id"` // ID пользователя
}

type ProfileResponse struct {
	ID             int    `json:"id"`                        // ID пользователя
	Name           string `json:"name"`                      // Имя
	Credits        int    `json:"credits"`                   // Баланс аккаунта
	SessionID      string `json:"session_id,omitempty"`      // Активная сессия
	SessionCredits int    `json:"session_credits,omitempty"` // Кредиты в активной сессии
}
