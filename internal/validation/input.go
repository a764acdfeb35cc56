package validation

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxMessageLength = 4000

var (
	ErrDateFormat      = errors.New("date must be formatted as YYYY-MM-DD")
	ErrMessageRequired = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message is too long (max 4000 characters)")
	ErrItemKey         = errors.New("item key must be 1-40 lowercase letters, digits or dashes")
	ErrQuantity        = errors.New("quantity must be between 0 and 10000")
)

var itemKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,39}$`)

// ValidateDate accepts calendar dates such as 2024-01-31.
func ValidateDate(date string) error {
	_, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ErrDateFormat
	}
	return nil
}

func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrMessageRequired
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

func ValidateItemKey(key string) error {
	if !itemKeyPattern.MatchString(key) {
		return ErrItemKey
	}
	return nil
}

func ValidateQuantity(q float64) error {
	if math.IsNaN(q) || q < 0 || q > 10000 {
		return ErrQuantity
	}
	return nil
}

var inputErrors = []error{
	ErrEmailRequired, ErrEmailTooLong, ErrEmailFormat,
	ErrPasswordTooShort, ErrPasswordTooLong, ErrPasswordCommon, ErrNameTooLong,
	ErrDateFormat, ErrMessageRequired, ErrMessageTooLong, ErrItemKey, ErrQuantity,
}

// IsInputError reports whether err came from one of the validators in this
// package, meaning the caller sent bad input.
func IsInputError(err error) bool {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
