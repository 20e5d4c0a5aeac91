package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createProductPayload struct {
	Name        string  `validate:"required,min=3,max=100,noAllRepeatingChars"`
	Description string  `validate:"required,min=10,max=500"`
	Price       float64 `validate:"required,gt=0"`
}

func TestStructFields(t *testing.T) {
	err := StructFields(&createProductPayload{
		Name:        "Monstera",
		Description: "A plant with holes in its leaves",
		Price:       30,
	})
	assert.NoError(t, err)
}

func TestStructFields_reportsEveryFailure(t *testing.T) {
	err := StructFields(&createProductPayload{
		Name:  "ab",
		Price: 0,
	})
	require.Error(t, err)

	fieldErrs, ok := err.(FieldErrors)
	require.True(t, ok)
	assert.Len(t, fieldErrs, 3)
	assert.Contains(t, fieldErrs, "'Name' failed on the 'min' rule")
	assert.Contains(t, fieldErrs, "'Description' failed on the 'required' rule")
	assert.Contains(t, fieldErrs, "'Price' failed on the 'required' rule")
}

func TestStructFields_noAllRepeatingChars(t *testing.T) {
	err := StructFields(&createProductPayload{
		Name:        "aaaaaaaaaa",
		Description: "A plant with holes in its leaves",
		Price:       30,
	})
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors), "'Name' failed on the 'noAllRepeatingChars' rule")

	err = StructFields(&createProductPayload{
		Name:        "aab",
		Description: "A plant with holes in its leaves",
		Price:       30,
	})
	assert.NoError(t, err)
}
