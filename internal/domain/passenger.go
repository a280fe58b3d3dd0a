package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	PhoneMinLen    = 10
	PhoneMaxLen    = 15
	PassportMinLen = 6
	PassportMaxLen = 20
	fullNameMaxLen = 100
)

type Passenger struct {
	ID         int64
	FullName   string
	Email      string
	Phone      string
	DOB        time.Time
	PassportNo string
}

type PassengerInput struct {
	FullName   string
	Email      string
	Phone      string
	DOB        time.Time
	PassportNo string
}

// NewPassenger validates every field independently of stored state.
// Uniqueness of email and passport is left to the store.
func NewPassenger(in PassengerInput) (*Passenger, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" || utf8.RuneCountInString(name) > fullNameMaxLen {
		return nil, Validation("Full name must be 1-100 characters")
	}
	if err := ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := ValidatePhone(in.Phone); err != nil {
		return nil, err
	}
	if err := ValidatePassport(in.PassportNo); err != nil {
		return nil, err
	}
	if in.DOB.IsZero() {
		return nil, Validation("Date of birth is required")
	}

	return &Passenger{
		FullName:   name,
		Email:      in.Email,
		Phone:      in.Phone,
		DOB:        in.DOB,
		PassportNo: in.PassportNo,
	}, nil
}

// ValidateEmail requires an '@' and a '.' somewhere after the last '@'.
func ValidateEmail(email string) error {
	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.Contains(email[at+1:], ".") {
		return Validation("Invalid email format")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if len(phone) < PhoneMinLen || len(phone) > PhoneMaxLen || !allDigits(phone) {
		return Validation("Phone must be 10-15 digits")
	}
	return nil
}

func ValidatePassport(passport string) error {
	n := utf8.RuneCountInString(passport)
	if n < PassportMinLen || n > PassportMaxLen || !alphanumeric(passport) {
		return Validation("Passport must be 6-20 alphanumeric characters")
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func alphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// MinimumAgeDays approximates two years as 2×365 days; leap days are not
// counted separately.
const MinimumAgeDays = 2 * 365

// AgeInDays counts whole calendar days from date of birth to the date of now.
func (p Passenger) AgeInDays(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dob := time.Date(p.DOB.Year(), p.DOB.Month(), p.DOB.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(dob).Hours() / 24)
}
