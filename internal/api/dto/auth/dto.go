package auth

type RegisterRequest struct {
	Name     string `json:"name"`     // Отображаемое имя
	Login    string `json:"login"`    // Логин
	Password string `json:"password"` // Пароль
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	// Текущая гостевая игровая сессия, которую надо перенести на пользователя
	SessionID string `json:"session_id,omitempty"`
}

type LoginResponse struct {
	AccessToken        string `json:"access_token"`
	GameSessionID      string `json:"game_session_id,omitempty"`      // Активная игровая сессия
	GameSessionCredits int    `json:"game_session_credits,omitempty"` // Кредиты в ней
}
