package validator

import (
	"testing"

	domainerrors "ratehub/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerBody struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Rating   int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func TestValidate_PasswordRule(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "Str0ng!pass", true},
		{"too short", "Ab!4567", false},
		{"too long", "Abcdefg!1234567890", false},
		{"no uppercase", "weak!password", false},
		{"no special char", "WeakPassword1", false},
		{"upper and special only", "PASSWORD!", true},
		{"multibyte runes counted not bytes", "評価！四字だ", false},
		{"multibyte within bounds", "評価プラット上Ａ！", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := registerBody{
				Name:     "A name long enough to pass",
				Email:    "user@example.com",
				Password: tt.password,
			}

			err := v.Validate(&body)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_FieldErrorShape(t *testing.T) {
	v := New()

	body := registerBody{
		Name:     "short",
		Email:    "not-an-email",
		Password: "Str0ng!pass",
	}

	err := v.Validate(&body)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 400, validationErr.HTTPCode())
	require.Len(t, validationErr.Fields, 2)

	assert.Equal(t, "name", validationErr.Fields[0].Field)
	assert.Equal(t, "name must be at least 20 characters", validationErr.Fields[0].Message)
	assert.Equal(t, "short", validationErr.Fields[0].Value)

	assert.Equal(t, "email", validationErr.Fields[1].Field)
	assert.Equal(t, "email must be a valid email address", validationErr.Fields[1].Message)
}

func TestValidate_PasswordValueNeverEchoed(t *testing.T) {
	v := New()

	body := registerBody{
		Name:     "A name long enough to pass",
		Email:    "user@example.com",
		Password: "secret",
	}

	err := v.Validate(&body)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "password", validationErr.Fields[0].Field)
	assert.Nil(t, validationErr.Fields[0].Value)
}

func TestValidate_NumericBoundsMessage(t *testing.T) {
	v := New()

	body := registerBody{
		Name:     "A name long enough to pass",
		Email:    "user@example.com",
		Password: "Str0ng!pass",
		Rating:   9,
	}

	err := v.Validate(&body)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "rating must be at most 5", validationErr.Fields[0].Message)
}
