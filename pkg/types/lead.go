package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadStatus string

const (
	LeadStatusStarted   LeadStatus = "started"
	LeadStatusCompleted LeadStatus = "completed"
)

// Lead is a potential applicant captured before the quiz starts. It is
// inserted once with status "started" and updated in place when the quiz
// completes.
type Lead struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Phone     string     `db:"phone"`
	UserID    *string    `db:"user_id"`
	Status    LeadStatus `db:"status"`
	Result    *Tier      `db:"result"`
	Score     *int       `db:"score"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

var phoneDigitsReg = regexp.MustCompile(`^[0-9]{8,11}$`)

// ComposePhone builds an E.164-ish phone from a country calling code and the
// local digits the user typed. Separators in the local part are stripped
// before validation.
func ComposePhone(countryCode, local string) (string, error) {
	countryCode = strings.TrimPrefix(strings.TrimSpace(countryCode), "+")
	if countryCode == "" {
		countryCode = "55"
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(local))

	if !phoneDigitsReg.MatchString(cleaned) {
		return "", fmt.Errorf("phone must have 8 to 11 digits, got %d", len(cleaned))
	}

	return fmt.Sprintf("+%s%s", countryCode, cleaned), nil
}
