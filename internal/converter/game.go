package converter

import (
	dto "slots_backend/internal/api/dto/game"
	"slots_backend/internal/model"
)

func ToStartResponse(res model.StartResult) dto.StartResponse {
	return dto.StartResponse{
		SessionID: res.SessionID,
		Credits:   res.Credits,
	}
}

func ToRollResponse(res model.RollResult) dto.RollResponse {
	symbols := make([]string, len(res.Symbols))
	for i, s := range res.Symbols {
		symbols[i] = string(s)
	}

	return dto.RollResponse{
		SessionID: res.SessionID,
		Symbols:   symbols,
		Credits:   res.Credits,
		Win:       res.Win,
		WinAmount: res.WinAmount,
	}
}

func ToCashoutResponse(res model.CashoutResult) dto.CashoutResponse {
	return dto.CashoutResponse{
		SessionID:  res.SessionID,
		CreditsOut: res.CreditsOut,
		Success:    true,
	}
}

func ToProfileResponse(profile model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:             profile.UserID,
		Name:           profile.Name,
		Credits:        profile.Credits,
		SessionID:      profile.SessionID,
		SessionCredits: profile.SessionCredits,
	}
}
