package service

import (
	"context"

	"slots_backend/internal/model"
)

type GameService interface {
	Start(ctx context.Context, ownerID int, sessionIDHint string) (*model.StartResult, error)
	Roll(ctx context.Context, sessionID string) (*model.RollResult, error)
	Cashout(ctx context.Context, sessionID string, callerUserID int) (*model.CashoutResult, error)
	Profile(ctx context.Context, userID int) (*model.Profile, error)
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password, gameSessionID string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
