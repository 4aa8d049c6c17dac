package core

// HighScoreStore persists a single best score.
// Implementations return errors instead of panicking; games treat a failed
// load as zero and ignore failed saves after reporting them.
type HighScoreStore interface {
	LoadHighScore() (uint32, error)
	SaveHighScore(score uint32) error
}
