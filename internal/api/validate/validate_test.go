package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string `json:"title" validate:"required,max=5"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Note  string `validate:"min=2"`
}

func TestStructOK(t *testing.T) {
	assert.NoError(t, Struct(sample{Title: "hi", Note: "ok"}))
}

func TestStructReportsJSONNames(t *testing.T) {
	err := Struct(sample{Title: "", Email: "nope", Note: "x"})
	require.Error(t, err)

	var errs Errs
	require.True(t, errors.As(err, &errs))
	assert.ElementsMatch(t, Errs{
		{Field: "title", Msg: "required"},
		{Field: "email", Msg: "must be a valid email address"},
		{Field: "Note", Msg: "must be at least 2 characters"},
	}, errs)
}

func TestStructMax(t *testing.T) {
	err := Struct(sample{Title: strings.Repeat("a", 6), Note: "ok"})
	assert.EqualError(t, err, "title: must be at most 5 characters")
}

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("email", "a@b.c"))
	assert.Equal(t, &ErrField{Field: "email", Msg: "required"}, Required("email", "  "))
}
