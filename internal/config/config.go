package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// BiasTier - ступень "докрутки": начиная с FromCredits выигрышная
// комбинация перебивается с вероятностью Probability
type BiasTier struct {
	FromCredits int
	Probability float64
}

type GameConfig interface {
	StartingCredits() int
	RollCost() int
	RequiredRolls() int
	BiasTiers() []BiasTier
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
