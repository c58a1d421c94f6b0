package handler

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain registers the validations before any struct is validated. The validator caches field
// names per type on first use so registering later doesn't rename fields of types already seen.
func TestMain(m *testing.M) {
	if err := RegisterValidation(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type preferencesPayload struct {
	NotificationType string `json:"notificationType" binding:"required,oneOf=None Email SMS Both"`
	Note             string `json:"-" binding:"omitempty,oneOf=x"`
	Untagged         string `binding:"omitempty,oneOf=y"`
}

func TestRegisterValidation(t *testing.T) {
	for _, value := range []string{"None", "Email", "SMS", "Both", "sms", "both"} {
		assert.NoError(t, binding.Validator.ValidateStruct(&preferencesPayload{NotificationType: value}), value)
	}

	err := binding.Validator.ValidateStruct(&preferencesPayload{NotificationType: "Pigeon", Untagged: "z"})

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Len(t, validationErrors, 2)
	assert.Equal(t, "notificationType", validationErrors[0].Field())
	assert.Equal(t, "oneOf", validationErrors[0].Tag())
	assert.Equal(t, "Untagged", validationErrors[1].Field())
}

func TestDescribe(t *testing.T) {
	type payload struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"gte=8"`
		Type     string `json:"notificationType" binding:"oneOf=None SMS"`
	}

	err := binding.Validator.ValidateStruct(&payload{Email: "not an email", Password: "short", Type: "Fax"})

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	var got []string
	for _, fieldError := range validationErrors {
		got = append(got, describe(fieldError))
	}
	assert.Equal(t, []string{
		"email must be an email address",
		"password must be at least 8 characters",
		"notificationType must be one of None, SMS",
	}, got)
}
