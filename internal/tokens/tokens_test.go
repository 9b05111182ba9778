package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
)

var testSecret = []byte("test-jwt-secret")

func testUser() *models.User {
	return &models.User{
		ID:    uuid.NewString(),
		Email: "john@example.com",
		Name:  "John",
	}
}

func TestMint_ParseIdentity_RoundTrip(t *testing.T) {
	t.Parallel()

	user := testUser()
	token, exp, err := Mint(user, testSecret, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Second)

	id, err := ParseIdentity(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, user.Email, id.Email)
	assert.Equal(t, user.Name, id.Name)
}

func TestParseIdentity_Expired(t *testing.T) {
	t.Parallel()

	token, _, err := Mint(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	id, err := ParseIdentity(token, testSecret)
	assert.Nil(t, id)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParseIdentity_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not-a-jwt"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := ParseIdentity(tt.token, testSecret)
			assert.Nil(t, id)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseIdentity_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := Mint(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	id, err := ParseIdentity(token, []byte("another-secret"))
	assert.Nil(t, id)
	assert.ErrorIs(t, err, ErrInvalid)
}
