package memory

import (
	"fmt"
	"math"
	"time"

	"github.com/example/vocabbot/pkg/models"
)

// minEasinessFactor is the floor of the SM-2 easiness factor.
const minEasinessFactor = 1.3

// passQuality is the lowest quality score counted as a successful review.
const passQuality = 3

// ValidateResult checks the numeric bounds of a review result.
func ValidateResult(result models.ReviewResult) error {
	if result.AccuracyScore < 0 || result.AccuracyScore > 1 {
		return fmt.Errorf("%w: accuracy score %.3f outside [0, 1]", ErrValidation, result.AccuracyScore)
	}
	if result.ResponseTimeMs < 0 {
		return fmt.Errorf("%w: negative response time %d ms", ErrValidation, result.ResponseTimeMs)
	}
	return nil
}

// QualityScore collapses a continuous review result into the 0-5 SM-2 quality
// scale. The base band comes from accuracy, then a fast answer earns a bonus,
// a slow one a penalty, and self-reported difficulty shifts the score around
// its neutral midpoint of 3.
func QualityScore(result models.ReviewResult) (int, error) {
	if err := ValidateResult(result); err != nil {
		return 0, err
	}

	var base float64
	switch {
	case result.AccuracyScore >= 0.90:
		base = 5
	case result.AccuracyScore >= 0.80:
		base = 4
	case result.AccuracyScore >= 0.60:
		base = 3
	case result.AccuracyScore >= 0.40:
		base = 2
	default:
		base = 1
	}

	switch {
	case result.ResponseTimeMs <= 2000:
		base += 0.5
	case result.ResponseTimeMs <= 5000:
		// no adjustment
	case result.ResponseTimeMs <= 10000:
		base -= 0.2
	default:
		base -= 0.5
	}

	base -= float64(result.SubjectiveDifficulty-3) * 0.2

	if base < 0 {
		base = 0
	}
	if base > 5 {
		base = 5
	}
	return int(math.Round(base)), nil
}

// nextEasinessFactor applies the SM-2 easiness update for a quality score,
// holding the result above the 1.3 floor.
func nextEasinessFactor(ef float64, quality int) float64 {
	q := float64(quality)
	ef = ef + 0.1 - (5-q)*(0.08+(5-q)*0.02)
	if ef < minEasinessFactor {
		ef = minEasinessFactor
	}
	return ef
}

// Advance applies one adaptive review to a word's memory state and
// proficiency level. It returns the new state, the new level and the next
// review date. On a validation error nothing is computed and the inputs are
// returned unchanged.
//
// A quality of 3 or better is a success: the interval runs 1, then 6, then
// grows by the easiness factor, and a quality of 4 or better raises the
// level. Anything below 3 resets repetitions, schedules a retry tomorrow and
// drops the level. The easiness factor is updated on both paths.
func Advance(state models.MemoryState, level int, result models.ReviewResult, now time.Time) (models.MemoryState, int, time.Time, error) {
	quality, err := QualityScore(result)
	if err != nil {
		return state, level, time.Time{}, err
	}

	if quality >= passQuality {
		switch state.Repetitions {
		case 0:
			state.Interval = 1
		case 1:
			state.Interval = 6
		default:
			// Grows with the easiness factor as it stood before this review.
			state.Interval = int(math.Round(float64(state.Interval) * state.EasinessFactor))
		}
		state.Repetitions++
		if quality >= 4 && level < maxLevelAdaptive {
			level++
		}
	} else {
		state.Repetitions = 0
		state.Interval = 1
		if level > 0 {
			level--
		}
	}

	state.EasinessFactor = nextEasinessFactor(state.EasinessFactor, quality)

	return state, level, now.AddDate(0, 0, state.Interval), nil
}
