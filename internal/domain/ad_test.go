package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEpochSeconds(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 500_000_000, time.UTC)
	assert.InDelta(t, 1740832200.5, EpochSeconds(now), 1e-6)
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("create ad: %w", NewValidationError("socialId", MsgSocialIDRequired))

	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("disk full")))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, MsgSocialIDRequired, ve.Message)
	assert.Equal(t, "socialId: "+MsgSocialIDRequired, ve.Error())
}
