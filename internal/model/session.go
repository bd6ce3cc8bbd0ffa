package model

import "time"

// Session - сессия авторизации (refresh токен), не путать с GameSession
type Session struct {
	ID           string
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
}
