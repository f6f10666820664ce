package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidParams is wrapped by every validation failure from Params.Validate.
var ErrInvalidParams = errors.New("invalid params")

// Params is the read-only tuning set shared by every part of the simulation.
// Field names double as keys in JSON or YAML override files.
type Params struct {
	GoalWidth float64 `yaml:"GoalWidth" json:"GoalWidth"`

	// --- Support spots ---
	NumSupportSpotsX                   int     `yaml:"NumSupportSpotsX" json:"NumSupportSpotsX"`
	NumSupportSpotsY                   int     `yaml:"NumSupportSpotsY" json:"NumSupportSpotsY"`
	SpotPassSafeScore                  float64 `yaml:"Spot_PassSafeScore" json:"Spot_PassSafeScore"`
	SpotCanScoreFromPositionScore      float64 `yaml:"Spot_CanScoreFromPositionScore" json:"Spot_CanScoreFromPositionScore"`
	SpotDistFromControllingPlayerScore float64 `yaml:"Spot_DistFromControllingPlayerScore" json:"Spot_DistFromControllingPlayerScore"`
	SupportSpotUpdateFreq              float64 `yaml:"SupportSpotUpdateFreq" json:"SupportSpotUpdateFreq"` // recalculations per second

	ChancePlayerAttemptsPotShot            float64 `yaml:"ChancePlayerAttemptsPotShot" json:"ChancePlayerAttemptsPotShot"`
	ChanceOfUsingArriveTypeReceiveBehavior float64 `yaml:"ChanceOfUsingArriveTypeReceiveBehavior" json:"ChanceOfUsingArriveTypeReceiveBehavior"`

	// --- Ball ---
	BallSize float64 `yaml:"BallSize" json:"BallSize"`
	BallMass float64 `yaml:"BallMass" json:"BallMass"`
	Friction float64 `yaml:"Friction" json:"Friction"` // negative: a deceleration per tick

	// --- Ranges ---
	KeeperInBallRange     float64 `yaml:"KeeperInBallRange" json:"KeeperInBallRange"`
	PlayerInTargetRange   float64 `yaml:"PlayerInTargetRange" json:"PlayerInTargetRange"`
	PlayerKickingDistance float64 `yaml:"PlayerKickingDistance" json:"PlayerKickingDistance"` // measured from the ball's edge
	PlayerKickFrequency   float64 `yaml:"PlayerKickFrequency" json:"PlayerKickFrequency"`     // kicks per second

	// --- Players ---
	PlayerMass                float64 `yaml:"PlayerMass" json:"PlayerMass"`
	PlayerMaxForce            float64 `yaml:"PlayerMaxForce" json:"PlayerMaxForce"`
	PlayerMaxSpeedWithBall    float64 `yaml:"PlayerMaxSpeedWithBall" json:"PlayerMaxSpeedWithBall"`
	PlayerMaxSpeedWithoutBall float64 `yaml:"PlayerMaxSpeedWithoutBall" json:"PlayerMaxSpeedWithoutBall"`
	PlayerMaxTurnRate         float64 `yaml:"PlayerMaxTurnRate" json:"PlayerMaxTurnRate"`
	PlayerScale               float64 `yaml:"PlayerScale" json:"PlayerScale"`
	PlayerComfortZone         float64 `yaml:"PlayerComfortZone" json:"PlayerComfortZone"`
	PlayerKickingAccuracy     float64 `yaml:"PlayerKickingAccuracy" json:"PlayerKickingAccuracy"` // 1 = perfect

	NumAttemptsToFindValidStrike int `yaml:"NumAttemptsToFindValidStrike" json:"NumAttemptsToFindValidStrike"`

	// --- Kicking ---
	MaxDribbleForce  float64 `yaml:"MaxDribbleForce" json:"MaxDribbleForce"`
	MaxShootingForce float64 `yaml:"MaxShootingForce" json:"MaxShootingForce"`
	MaxPassingForce  float64 `yaml:"MaxPassingForce" json:"MaxPassingForce"`

	MinPassDist           float64 `yaml:"MinPassDist" json:"MinPassDist"`
	GoalkeeperMinPassDist float64 `yaml:"GoalkeeperMinPassDist" json:"GoalkeeperMinPassDist"`

	GoalKeeperTendingDistance float64 `yaml:"GoalKeeperTendingDistance" json:"GoalKeeperTendingDistance"`
	GoalKeeperInterceptRange  float64 `yaml:"GoalKeeperInterceptRange" json:"GoalKeeperInterceptRange"`
	BallWithinReceivingRange  float64 `yaml:"BallWithinReceivingRange" json:"BallWithinReceivingRange"`

	// --- Debug overlays (initial state only; the simulation never reads these) ---
	ShowStates            bool `yaml:"bStates" json:"bStates"`
	ShowIDs               bool `yaml:"bIDs" json:"bIDs"`
	ShowSupportSpots      bool `yaml:"bSupportSpots" json:"bSupportSpots"`
	ShowRegions           bool `yaml:"bRegions" json:"bRegions"`
	ShowControllingTeam   bool `yaml:"bShowControllingTeam" json:"bShowControllingTeam"`
	ShowViewTargets       bool `yaml:"bViewTargets" json:"bViewTargets"`
	HighlightIfThreatened bool `yaml:"bHighlightIfThreatened" json:"bHighlightIfThreatened"`

	FrameRate int `yaml:"FrameRate" json:"FrameRate"`

	SeparationCoefficient    float64 `yaml:"SeparationCoefficient" json:"SeparationCoefficient"`
	ViewDistance             float64 `yaml:"ViewDistance" json:"ViewDistance"`
	NonPenetrationConstraint bool    `yaml:"bNonPenetrationConstraint" json:"bNonPenetrationConstraint"`

	// Derived values, filled by Derive.
	BallWithinReceivingRangeSq float64 `yaml:"-" json:"-"`
	KeeperInBallRangeSq        float64 `yaml:"-" json:"-"`
	PlayerInTargetRangeSq      float64 `yaml:"-" json:"-"`
	PlayerKickingDistanceSq    float64 `yaml:"-" json:"-"`
	PlayerComfortZoneSq        float64 `yaml:"-" json:"-"`
	GoalKeeperInterceptRangeSq float64 `yaml:"-" json:"-"`
}

// DefaultParams returns the stock tuning set with derived values filled in.
func DefaultParams() Params {
	p := Params{
		GoalWidth: 100,

		NumSupportSpotsX:                   13,
		NumSupportSpotsY:                   6,
		SpotPassSafeScore:                  2.0,
		SpotCanScoreFromPositionScore:      1.0,
		SpotDistFromControllingPlayerScore: 2.0,
		SupportSpotUpdateFreq:              1,

		ChancePlayerAttemptsPotShot:            0.005,
		ChanceOfUsingArriveTypeReceiveBehavior: 0.5,

		BallSize: 5.0,
		BallMass: 1.0,
		Friction: -0.015,

		KeeperInBallRange:     10.0,
		PlayerInTargetRange:   10.0,
		PlayerKickingDistance: 6.0,
		PlayerKickFrequency:   8,

		PlayerMass:                3.0,
		PlayerMaxForce:            1.0,
		PlayerMaxSpeedWithBall:    1.2,
		PlayerMaxSpeedWithoutBall: 1.6,
		PlayerMaxTurnRate:         0.4,
		PlayerScale:               1.0,
		PlayerComfortZone:         60.0,
		PlayerKickingAccuracy:     0.99,

		NumAttemptsToFindValidStrike: 5,

		MaxDribbleForce:  1.5,
		MaxShootingForce: 6.0,
		MaxPassingForce:  3.0,

		MinPassDist:           120.0,
		GoalkeeperMinPassDist: 50.0,

		GoalKeeperTendingDistance: 20.0,
		GoalKeeperInterceptRange:  100.0,
		BallWithinReceivingRange:  10.0,

		ShowStates:          true,
		ShowIDs:             true,
		ShowSupportSpots:    true,
		ShowControllingTeam: true,

		FrameRate: 60,

		SeparationCoefficient: 10.0,
		ViewDistance:          30.0,
	}
	p.Derive()
	return p
}

// KickingDistance is the configured kicking distance plus the ball radius.
func (p *Params) KickingDistance() float64 {
	return p.PlayerKickingDistance + p.BallSize
}

// Derive recomputes the squared ranges from the configured values.
func (p *Params) Derive() {
	kd := p.KickingDistance()
	p.BallWithinReceivingRangeSq = p.BallWithinReceivingRange * p.BallWithinReceivingRange
	p.KeeperInBallRangeSq = p.KeeperInBallRange * p.KeeperInBallRange
	p.PlayerInTargetRangeSq = p.PlayerInTargetRange * p.PlayerInTargetRange
	p.PlayerKickingDistanceSq = kd * kd
	p.PlayerComfortZoneSq = p.PlayerComfortZone * p.PlayerComfortZone
	p.GoalKeeperInterceptRangeSq = p.GoalKeeperInterceptRange * p.GoalKeeperInterceptRange
}

// Validate rejects parameter sets the simulation cannot run with.
func (p *Params) Validate() error {
	switch {
	case p.GoalWidth <= 0:
		return fmt.Errorf("%w: GoalWidth must be > 0, got %v", ErrInvalidParams, p.GoalWidth)
	case p.NumSupportSpotsX < 4 || p.NumSupportSpotsY < 1:
		return fmt.Errorf("%w: support spot grid %dx%d too small", ErrInvalidParams, p.NumSupportSpotsX, p.NumSupportSpotsY)
	case p.BallMass <= 0:
		return fmt.Errorf("%w: BallMass must be > 0, got %v", ErrInvalidParams, p.BallMass)
	case p.PlayerMass <= 0:
		return fmt.Errorf("%w: PlayerMass must be > 0, got %v", ErrInvalidParams, p.PlayerMass)
	case p.Friction >= 0:
		return fmt.Errorf("%w: Friction must be negative, got %v", ErrInvalidParams, p.Friction)
	case p.FrameRate <= 0:
		return fmt.Errorf("%w: FrameRate must be > 0, got %d", ErrInvalidParams, p.FrameRate)
	case p.NumAttemptsToFindValidStrike < 1:
		return fmt.Errorf("%w: NumAttemptsToFindValidStrike must be >= 1", ErrInvalidParams)
	case p.PlayerKickingAccuracy < 0 || p.PlayerKickingAccuracy > 1:
		return fmt.Errorf("%w: PlayerKickingAccuracy must be in [0,1], got %v", ErrInvalidParams, p.PlayerKickingAccuracy)
	}
	return nil
}

// LoadParams reads a file of overrides on top of DefaultParams. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON. Keys missing
// from the file keep their default.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return p, fmt.Errorf("read params %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return p, fmt.Errorf("parse params %s: %w", path, err)
	}
	p.Derive()
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("params %s: %w", path, err)
	}
	return p, nil
}
