package auth

import (
	"slots_backend/internal/config"
	"slots_backend/internal/repository"
	"slots_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
)

// Стартовый баланс нового аккаунта
const registerStartBalance = 10

type serv struct {
	txManager   trm.Manager
	userRepo    repository.UserRepository
	authRepo    repository.AuthRepository
	sessionRepo repository.GameSessionRepository
	jwtConfig   config.JWTConfig
}

func NewAuthService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	sessionRepo repository.GameSessionRepository,
	jwtConfig config.JWTConfig,
) service.AuthService {
	return &serv{
		txManager:   txManager,
		userRepo:    userRepo,
		authRepo:    authRepo,
		sessionRepo: sessionRepo,
		jwtConfig:   jwtConfig,
	}
}

// generateSessionID - ID сессии авторизации
func generateSessionID() string {
	return uuid.NewString()
}
