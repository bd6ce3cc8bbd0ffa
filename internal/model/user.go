package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID       int
	Name     string
	Login    string
	Password string
	Balance  int
}

type UserClaims struct {
	jwt.RegisteredClaims
}

// AuthData - результат регистрации/логина: токены и ID сессии авторизации
type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string

	// Активная игровая сессия пользователя (если есть),
	// чтобы клиент мог продолжить игру сразу после логина
	GameSessionID      string
	GameSessionCredits int
}
