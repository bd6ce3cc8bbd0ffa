package repository

import (
	"context"

	"slots_backend/internal/model"
)

type GameSessionRepository interface {
	Create(ctx context.Context, ownerID int, credits int) (*model.GameSession, error)
	Get(ctx context.Context, id string) (*model.GameSession, error)
	Update(ctx context.Context, id string, credits int, lastRoll [3]model.Symbol, rollCount int) error
	Deactivate(ctx context.Context, id string) error
	FindActiveByOwner(ctx context.Context, ownerID int) (*model.GameSession, error)
	TransferOwner(ctx context.Context, id string, fromOwnerID, toOwnerID int) (bool, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int, error)
	SetBalance(ctx context.Context, id int, amount int) error
	AddToBalance(ctx context.Context, id int, delta int) (newBalance int, err error)

	EnsureGuest(ctx context.Context) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}
