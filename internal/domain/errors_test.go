package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestError_WrapsKind(t *testing.T) {
	err := fmt.Errorf("book ticket: %w", Conflict("Seat already taken"))

	assert.ErrorIs(t, err, ErrConflict)
	assert.False(t, errors.Is(err, ErrPolicy))
	assert.Equal(t, "book ticket: Seat already taken", err.Error())

	var domainErr *Error
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Seat already taken", domainErr.Message)
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "validation", KindName(Validation("x")))
	assert.Equal(t, "constraint", KindName(Constraint("x")))
	assert.Equal(t, "conflict", KindName(Conflict("x")))
	assert.Equal(t, "policy", KindName(Policy("x")))
	assert.Equal(t, "not_found", KindName(NotFound("x")))
	assert.Equal(t, "internal", KindName(errors.New("boom")))
}

func TestPassenger_AgeInDays(t *testing.T) {
	now := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 0, Passenger{DOB: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)}.AgeInDays(now))
	assert.Equal(t, 730, Passenger{DOB: time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC)}.AgeInDays(now))
	assert.Equal(t, 729, Passenger{DOB: time.Date(2024, 10, 16, 0, 0, 0, 0, time.UTC)}.AgeInDays(now))
}
