// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phoneFixture struct {
	Phone string `validate:"inphone"`
}

func TestIndianPhoneValidation(t *testing.T) {
	valid := []string{"9876543210", "6000000000", "7123456789", "8999999999"}
	for _, phone := range valid {
		assert.NoError(t, ValidateStruct(&phoneFixture{Phone: phone}), phone)
	}

	invalid := []string{
		"1234567890",  // must start with 6-9
		"98765",       // too short
		"98765432100", // too long
		"98765-43210", // no separators
		"abcdefghij",
		"",
	}
	for _, phone := range invalid {
		assert.Error(t, ValidateStruct(&phoneFixture{Phone: phone}), phone)
	}
}

type passwordFixture struct {
	Password string `validate:"strong_password"`
}

func TestStrongPasswordValidation(t *testing.T) {
	valid := []string{"Password1", "Str0ngEnough", "aB3defgh"}
	for _, password := range valid {
		assert.NoError(t, ValidateStruct(&passwordFixture{Password: password}), password)
	}

	invalid := []string{
		"short1A",       // under 8 chars
		"alllowercase1", // no uppercase
		"ALLUPPERCASE1", // no lowercase
		"NoNumbersHere", // no digit
		"",
	}
	for _, password := range invalid {
		assert.Error(t, ValidateStruct(&passwordFixture{Password: password}), password)
	}
}

func TestGetValidationErrors(t *testing.T) {
	type fixture struct {
		Email string `validate:"required,email"`
		Phone string `validate:"required,inphone"`
	}

	err := ValidateStruct(&fixture{Email: "not-an-email", Phone: "123"})
	require.Error(t, err)

	errors := GetValidationErrors(err)
	require.Len(t, errors, 2)
	assert.Equal(t, "email", errors[0].Field)
	assert.Equal(t, "email", errors[0].Tag)
	assert.Equal(t, "phone", errors[1].Field)
	assert.Equal(t, "inphone", errors[1].Tag)
}

func TestGetValidationErrorsNil(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
}
