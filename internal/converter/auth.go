package converter

import (
	dto "slots_backend/internal/api/dto/auth"
	"slots_backend/internal/model"
)

func RegisterRequestToUserModel(req *dto.RegisterRequest) *model.User {
	return &model.User{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
	}
}

func ToLoginResponse(data model.AuthData) dto.LoginResponse {
	return dto.LoginResponse{
		AccessToken:        data.AccessToken,
		GameSessionID:      data.GameSessionID,
		GameSessionCredits: data.GameSessionCredits,
	}
}
