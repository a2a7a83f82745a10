package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name         string `validate:"required,valid_name,no_emoji"`
	Email        string `validate:"required,email"`
	Requirements string `validate:"max=5"`
}

func TestCustomValidators(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid", sample{Name: "Jane O'Neil-Smith", Email: "jane@x.com"}, false},
		{"accented letters", sample{Name: "José Müller", Email: "j@x.com"}, false},
		{"symbols rejected", sample{Name: "Jane <script>", Email: "jane@x.com"}, true},
		{"emoji rejected", sample{Name: "Jane 🚀", Email: "jane@x.com"}, true},
		{"missing name", sample{Email: "jane@x.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := New()
	err := v.Struct(sample{Email: "nope", Requirements: "too long"})

	msgs := FormatValidationErrors(err)

	assert.Contains(t, msgs, "Name: Required")
	assert.Contains(t, msgs, "Email: Invalid email address")
	assert.Contains(t, msgs, "AI role needs: At most 5 characters")
	assert.True(t, HasTag(err, "required"))
	assert.False(t, HasTag(err, "no_emoji"))
}
