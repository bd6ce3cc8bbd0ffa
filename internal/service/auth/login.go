package auth

import (
	"context"
	"errors"
	"time"

	"slots_backend/internal/model"
	"slots_backend/pkg/pass"
	"slots_backend/pkg/token"
)

// Login - проверка пароля, открытие сессии авторизации и перенос
// активной гостевой игровой сессии на вошедшего пользователя
func (s *serv) Login(ctx context.Context, login, password, gameSessionID string) (*model.AuthData, error) {
	// Получение пользователя из бд по логину
	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(user.Password, password) {
		return nil, model.ErrInvalidCredentials
	}

	// Если клиент играл гостем, его активная сессия переезжает
	// к пользователю. Чужие и закрытые сессии перенос не трогает
	var gameSession *model.GameSession
	if gameSessionID != "" {
		moved, err := s.sessionRepo.TransferOwner(ctx, gameSessionID, model.GuestUserID, user.ID)
		if err != nil {
			return nil, err
		}
		if moved {
			gameSession, err = s.sessionRepo.Get(ctx, gameSessionID)
			if err != nil {
				return nil, err
			}
		}
	}

	// Иначе отдаем последнюю активную сессию пользователя, если есть
	if gameSession == nil {
		sess, err := s.sessionRepo.FindActiveByOwner(ctx, user.ID)
		if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
			return nil, err
		}
		if err == nil {
			gameSession = sess
		}
	}

	// Генерация sessionID
	sessionID := generateSessionID()

	// Генерация refresh токена
	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// Создать сессию
	err = s.authRepo.CreateSession(ctx,
		&model.Session{
			ID:           sessionID,
			UserID:       user.ID,
			RefreshToken: token.HashRefreshToken(refreshToken),
			ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenDuration()),
		})
	if err != nil {
		return nil, err
	}

	// Создать access токен
	accessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	data := &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}

	if gameSession != nil {
		data.GameSessionID = gameSession.ID
		data.GameSessionCredits = gameSession.Credits
	}

	return data, nil
}
