package env

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"slots_backend/internal/config"

	"gopkg.in/yaml.v3"
)

// Структуры для разбора game-секции config.yaml
type gameYAML struct {
	Game struct {
		StartingCredits int        `yaml:"starting_credits"`
		RollCost        int        `yaml:"roll_cost"`
		RequiredRolls   int        `yaml:"required_rolls"`
		BiasTiers       []tierYAML `yaml:"bias_tiers"`
	} `yaml:"game"`
}

type tierYAML struct {
	FromCredits int     `yaml:"from_credits"`
	Probability float64 `yaml:"probability"`
}

type gameConfig struct {
	startingCredits int
	rollCost        int
	requiredRolls   int
	biasTiers       []config.BiasTier
}

// NewGameConfigFromYAML - читает игровые настройки из YAML файла
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var parsed gameYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	g := parsed.Game
	if g.StartingCredits <= 0 {
		return nil, errors.New("starting_credits must be positive")
	}
	if g.RollCost <= 0 {
		return nil, errors.New("roll_cost must be positive")
	}
	if g.RequiredRolls < 0 {
		return nil, errors.New("required_rolls must not be negative")
	}
	if len(g.BiasTiers) == 0 {
		return nil, errors.New("bias_tiers must not be empty")
	}

	tiers := make([]config.BiasTier, 0, len(g.BiasTiers))
	for _, t := range g.BiasTiers {
		if t.Probability < 0 || t.Probability > 1 {
			return nil, fmt.Errorf("bias tier probability %v out of range", t.Probability)
		}
		tiers = append(tiers, config.BiasTier{
			FromCredits: t.FromCredits,
			Probability: t.Probability,
		})
	}

	// Ступени храним по возрастанию порога, выбор идет с конца
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].FromCredits < tiers[j].FromCredits
	})

	return &gameConfig{
		startingCredits: g.StartingCredits,
		rollCost:        g.RollCost,
		requiredRolls:   g.RequiredRolls,
		biasTiers:       tiers,
	}, nil
}

func (cfg *gameConfig) StartingCredits() int {
	return cfg.startingCredits
}

func (cfg *gameConfig) RollCost() int {
	return cfg.rollCost
}

func (cfg *gameConfig) RequiredRolls() int {
	return cfg.requiredRolls
}

func (cfg *gameConfig) BiasTiers() []config.BiasTier {
	return cfg.biasTiers
}
