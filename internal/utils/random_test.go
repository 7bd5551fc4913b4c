package utils

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := GenerateUsernameFromFullName("Lucia Garcia")

	assert.True(t, strings.HasPrefix(username, "luciag"), "got %q", username)
	for _, r := range username {
		assert.Truef(t, unicode.IsLower(r) || unicode.IsDigit(r), "unexpected rune %q in %q", r, username)
	}
}

func TestGenerateRandomOTP(t *testing.T) {
	otp := GenerateRandomOTP()

	require.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, unicode.IsDigit(r))
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, GenerateRandomPassword(12), 12)
	assert.Len(t, GenerateRandomPassword(1), 1)
}

func TestGenerateRandomWorker(t *testing.T) {
	coordinatorID := int64(3)
	worker := GenerateRandomWorker("Norte", &coordinatorID)

	assert.NotEmpty(t, worker.Name)
	assert.Equal(t, "Norte", worker.HomePool)
	require.NotNil(t, worker.CoordinatorID)
	assert.Equal(t, coordinatorID, *worker.CoordinatorID)

	reserve := GenerateRandomWorker("Norte", nil)
	assert.Nil(t, reserve.CoordinatorID)
}
