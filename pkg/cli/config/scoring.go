package config

import (
	_ "embed"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/govern-lab/aegis/pkg/domain/model/config"
)

//go:embed data/scoring.toml
var defaultScoringTOML []byte

// Scoring holds CLI flags for the risk scoring policy table
type Scoring struct {
	path string
}

// Flags returns CLI flags for scoring configuration
func (s *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring",
			Usage:       "Path to scoring table TOML file (default: embedded)",
			Sources:     cli.EnvVars("AEGIS_SCORING"),
			Destination: &s.path,
		},
	}
}

type scoringFile struct {
	Weights    scoringWeightsTOML    `toml:"weights"`
	Thresholds scoringThresholdsTOML `toml:"thresholds"`
}

type scoringWeightsTOML struct {
	DataSensitivity    float64 `toml:"data_sensitivity"`
	Autonomy           float64 `toml:"autonomy"`
	UserImpact         float64 `toml:"user_impact"`
	RegulatoryExposure float64 `toml:"regulatory_exposure"`
	Maturity           float64 `toml:"maturity"`
}

type scoringThresholdsTOML struct {
	Medium    int `toml:"medium"`
	High      int `toml:"high"`
	Regulated int `toml:"regulated"`
}

// Configure loads and validates the scoring table
func (s *Scoring) Configure() (*domainConfig.ScoringConfig, error) {
	data, err := readOrDefault(s.path, defaultScoringTOML)
	if err != nil {
		return nil, err
	}

	var sf scoringFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return nil, goerr.Wrap(err, "failed to parse scoring TOML", goerr.V("path", s.path))
	}

	cfg := &domainConfig.ScoringConfig{
		Weights: domainConfig.DimensionWeights{
			DataSensitivity:    sf.Weights.DataSensitivity,
			Autonomy:           sf.Weights.Autonomy,
			UserImpact:         sf.Weights.UserImpact,
			RegulatoryExposure: sf.Weights.RegulatoryExposure,
			Maturity:           sf.Weights.Maturity,
		},
		Thresholds: domainConfig.TierThresholds{
			Medium:    sf.Thresholds.Medium,
			High:      sf.Thresholds.High,
			Regulated: sf.Thresholds.Regulated,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scoring configuration", goerr.V("path", s.path))
	}
	return cfg, nil
}
