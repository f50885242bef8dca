package security

import (
	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// StrengthMeter scores credentials with zxcvbn. The score is advisory only:
// the entity's own format rule is the sole gate, the meter just informs the
// operator how weak a stored credential is.
type StrengthMeter struct{}

// NewStrengthMeter constructs a StrengthMeter.
func NewStrengthMeter() *StrengthMeter {
	return &StrengthMeter{}
}

// Score returns the zxcvbn score for the credential, 0 (weakest) to 4.
func (m *StrengthMeter) Score(credential string, userInputs ...string) int {
	if credential == "" {
		return 0
	}
	return zxcvbn.PasswordStrength(credential, userInputs).Score
}

// Label returns a human-readable strength label for the credential.
func (m *StrengthMeter) Label(credential string, userInputs ...string) string {
	switch m.Score(credential, userInputs...) {
	case 0:
		return "very weak"
	case 1:
		return "weak"
	case 2:
		return "fair"
	case 3:
		return "strong"
	default:
		return "very strong"
	}
}
