package model

import "time"

// GuestUserID - зарезервированный ID гостевого пользователя.
// Реальные пользователи получают ID из sequence начиная с 1,
// поэтому коллизий с гостем быть не может
const GuestUserID = 0

// GameSession - одна непрерывная игровая сессия.
// Credits - внутриигровой баланс, живет отдельно от баланса пользователя
type GameSession struct {
	ID        string
	OwnerID   int
	Credits   int
	LastRoll  []Symbol
	RollCount int
	IsActive  bool
	UpdatedAt time.Time
}

// StartResult - результат старта (или возобновления) игровой сессии
type StartResult struct {
	SessionID string
	Credits   int
}

// RollResult - результат одного вращения барабанов
type RollResult struct {
	SessionID string
	Symbols   [3]Symbol
	Credits   int
	Win       bool
	WinAmount int
}

// CashoutResult - результат вывода средств из сессии на баланс пользователя
type CashoutResult struct {
	SessionID  string
	CreditsOut int
}

// Profile - профиль пользователя вместе с активной сессией, если она есть
type Profile struct {
	UserID         int
	Name           string
	Credits        int
	SessionID      string
	SessionCredits int
}
