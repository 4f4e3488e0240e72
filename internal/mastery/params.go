package mastery

import "fmt"

// Params configures the mastery model.
// Zero values produce the defaults; see field comments.
type Params struct {
	// Alpha is the EWMA decay factor: recent' = alpha*score + (1-alpha)*recent.
	// Zero → 0.3.
	Alpha float64

	// Threshold is the recent-score floor for mastery. Zero → 0.8.
	Threshold float64

	// MinAttempts is the attempt-count floor for mastery. A perfect recent
	// score on fewer attempts is not mastery. Zero → 3.
	MinAttempts int
}

// DefaultParams returns the default model parameters.
func DefaultParams() Params {
	return Params{
		Alpha:       0.3,
		Threshold:   0.8,
		MinAttempts: 3,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Alpha == 0 {
		p.Alpha = d.Alpha
	}
	if p.Threshold == 0 {
		p.Threshold = d.Threshold
	}
	if p.MinAttempts == 0 {
		p.MinAttempts = d.MinAttempts
	}
	return p
}

// Validate checks the parameters after defaults are applied.
func (p Params) Validate() error {
	if p.Alpha <= 0 || p.Alpha > 1 {
		return fmt.Errorf("mastery: alpha %f out of range (0, 1]", p.Alpha)
	}
	if p.Threshold <= 0 || p.Threshold > 1 {
		return fmt.Errorf("mastery: threshold %f out of range (0, 1]", p.Threshold)
	}
	if p.MinAttempts < 1 {
		return fmt.Errorf("mastery: min attempts %d must be at least 1", p.MinAttempts)
	}
	return nil
}
