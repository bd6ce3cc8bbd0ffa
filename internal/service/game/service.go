package game

import (
	"slots_backend/internal/config"
	"slots_backend/internal/repository"
	"slots_backend/internal/service"
	"slots_backend/pkg/keylock"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	gameCfg     config.GameConfig
	sessionRepo repository.GameSessionRepository
	userRepo    repository.UserRepository
	txManager   trm.Manager
	roller      *Roller

	// Блокировки по ID сессии: не больше одной мутирующей
	// операции на сессию одновременно
	locks *keylock.KeyLock
}

// NewGameService Создать движок игровых сессий
func NewGameService(
	gameCfg config.GameConfig,
	sessionRepo repository.GameSessionRepository,
	userRepo repository.UserRepository,
	txManager trm.Manager,
	roller *Roller,
) service.GameService {
	return &serv{
		gameCfg:     gameCfg,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		roller:      roller,
		locks:       keylock.New(),
	}
}
