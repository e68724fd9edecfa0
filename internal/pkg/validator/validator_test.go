package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"gt=0"`
	Note  string `json:"note"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	fields := Validate(sample{Email: "not-an-email", Count: 0})

	assert.Len(t, fields, 2)
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be greater than 0", fields["count"])
}

func TestValidate_NilOnValidInput(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "amina@example.com", Count: 3}))
}

func TestValidate_RequiredMessage(t *testing.T) {
	fields := Validate(sample{Count: 1})
	assert.Equal(t, "is required", fields["email"])
}
