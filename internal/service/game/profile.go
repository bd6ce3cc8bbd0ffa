package game

import (
	"context"
	"errors"

	"slots_backend/internal/model"
)

// Profile - профиль пользователя: баланс и активная сессия, если есть
func (s *serv) Profile(ctx context.Context, userID int) (*model.Profile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		UserID:  user.ID,
		Name:    user.Name,
		Credits: user.Balance,
	}

	sess, err := s.sessionRepo.FindActiveByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return profile, nil
		}
		return nil, err
	}

	profile.SessionID = sess.ID
	profile.SessionCredits = sess.Credits

	return profile, nil
}
