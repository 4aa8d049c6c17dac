package sim

// Params are the tunables a difficulty preset may change. The rules
// themselves are fixed.
type Params struct {
	// StartHealth is both the starting health and the starting cap.
	StartHealth uint32
	// BaseScrollSpeed is the level-1 scroll rate in world units per frame.
	BaseScrollSpeed float64
	// FirstKrampusCountdown is the dormant countdown at the start of a run.
	FirstKrampusCountdown uint32
	// Progression enables the level-up every fifth delivery.
	Progression bool
	// TutorialFrames is how long the first-run hint stays on screen.
	TutorialFrames uint32
}

// DefaultParams returns the normal difficulty.
func DefaultParams() Params {
	return Params{
		StartHealth:           3,
		BaseScrollSpeed:       2.0,
		FirstKrampusCountdown: 600,
		Progression:           true,
		TutorialFrames:        300,
	}
}

func (p Params) normalized() Params {
	d := DefaultParams()
	if p.StartHealth == 0 {
		p.StartHealth = d.StartHealth
	}
	if p.StartHealth > MaxHealthCap {
		p.StartHealth = MaxHealthCap
	}
	if p.BaseScrollSpeed <= 0 {
		p.BaseScrollSpeed = d.BaseScrollSpeed
	}
	if p.FirstKrampusCountdown == 0 {
		p.FirstKrampusCountdown = d.FirstKrampusCountdown
	}
	return p
}

// Gameplay constants.
const (
	PlayerSpeed   = 3.0
	PlayerMinY    = 20.0
	PlayerMaxY    = 150.0
	PlayerStartY  = 80.0
	playerEase    = 0.3
	playerTiltMul = 0.1

	MaxHealthCap = 5
	MaxNaughty   = 100

	// NaughtyThreshold forces a Krampus warning regardless of the countdown.
	NaughtyThreshold = 80
	naughtyPerMiss   = 15
	naughtyPerGift   = 5

	chimneySpawnX   = ScreenW + 20
	chimneyRemoveX  = -30.0
	chimneyMinY     = 160.0
	chimneyMaxY     = 190.0
	chimneyMinGap   = 120.0
	chimneyMaxGap   = 200.0
	chimneyStyles   = 3
	targetBehind    = 20.0
	targetAhead     = 150.0
	giftStartVelY   = 1.0
	giftGravity     = 0.15
	giftDriftFactor = 0.5
	deliverHalfW    = 25.0
	deliverAbove    = 10.0
	deliverBelow    = 30.0

	powerUpFirstDelay = 600
	powerUpBaseDelay  = 900
	powerUpDelayRange = 600
	powerUpSpawnX     = ScreenW + 10
	powerUpMinY       = 40.0
	powerUpMaxY       = 140.0
	powerUpRemoveX    = -20.0
	powerUpPhaseStep  = 0.1
	powerUpBob        = 5.0
	pickupHalfW       = 25.0
	pickupHalfH       = 20.0
	starPowerFrames   = 300

	hitRadius        = 14.0
	invincibleFrames = 90
	projectileSpeed  = 2.5
	projectileMargin = 10.0
	spreadAngle      = 0.3
	diagonal         = 0.707

	comboWindow        = 180
	deliveriesPerLevel = 5
	maxScrollSpeed     = 3.5
	scrollPerLevel     = 0.2

	warningFrames     = 120
	attackFrames      = 360
	krampusEntryX     = ScreenW + 40
	krampusHoldX      = ScreenW - 80
	krampusApproach   = 4.0
	krampusTrack      = 0.035
	krampusMinY       = 60.0
	krampusMaxY       = 140.0
	minKrampusTimer   = 180
	baseKrampusTimer  = 600
	krampusTimerStep  = 40
	maxKrampusShorten = 400
	baseFireRate      = 50
	minFireRate       = 20
	fireRateStep      = 5
	maxFireShorten    = 25

	snowflakeCount = 30
	popupLife      = 45
	popupRise      = 0.8
)
