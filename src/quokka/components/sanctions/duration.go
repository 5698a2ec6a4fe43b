package sanctions

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDuration = errors.New("invalid duration")

// ParseDuration parses a compact duration like "30m", "1h", "1d" or "1w".
// A bare integer is read as minutes and the literal "perm" means permanent
// (permanent true, zero duration). Anything else returns ErrInvalidDuration.
func ParseDuration(text string) (time.Duration, bool, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, false, ErrInvalidDuration
	}
	if text == "perm" {
		return 0, true, nil
	}

	unit := time.Minute
	digits := text
	switch text[len(text)-1] {
	case 's':
		unit = time.Second
		digits = text[:len(text)-1]
	case 'm':
		unit = time.Minute
		digits = text[:len(text)-1]
	case 'h':
		unit = time.Hour
		digits = text[:len(text)-1]
	case 'd':
		unit = 24 * time.Hour
		digits = text[:len(text)-1]
	case 'w':
		unit = 7 * 24 * time.Hour
		digits = text[:len(text)-1]
	}

	amount, err := strconv.Atoi(digits)
	if err != nil || amount <= 0 {
		return 0, false, ErrInvalidDuration
	}
	return time.Duration(amount) * unit, false, nil
}
