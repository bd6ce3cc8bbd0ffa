package model

import "errors"

// Ожидаемые бизнес-ошибки движка. Хендлеры мапят их на HTTP статусы
// через errors.Is, в системный лог они не попадают
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrSessionNotFound     = errors.New("session not found or not active")
	ErrInsufficientCredits = errors.New("not enough credits to roll")
	ErrInsufficientRolls   = errors.New("need to play at least 2 times before cashing out")
	ErrGuestCashout        = errors.New("guests must register or login before cashing out")
	ErrOwnerMismatch       = errors.New("session does not belong to this user")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrLoginTaken          = errors.New("login already taken")
)
