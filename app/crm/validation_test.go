package crm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	testCases := []struct {
		phone string
		valid bool
	}{
		{"123-456-7890", true},
		{"+1234567890", true},
		{"+1-555-123-4567", true},
		{"(555) 123-4567", true},
		{"555.123.4567", true},
		{"5551234567", true},
		{"+44 020 123 4567", true},
		{"abc", false},
		{"", false},
		{"123-456", false},
		{"+12", false},
		{"555-123-45678", false},
	}

	for _, tc := range testCases {
		t.Run(tc.phone, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidPhone(tc.phone))
		})
	}
}

func TestCheckFields(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	assert.NoError(t, checkFields(CustomerInput{Name: "Alice", Email: "alice@example.com"}))

	err := checkFields(CustomerInput{Name: "Alice"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Email is required", err.Error())

	err = checkFields(CustomerInput{Name: string(long), Email: "a@example.com"})
	assert.Equal(t, "Name must be at most 100 characters", err.Error())
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"3", "1", "2"}, uniqueIDs([]string{"3", " 1", "3", "2", "1"}))
	assert.Empty(t, uniqueIDs(nil))
}

func TestParseID(t *testing.T) {
	n, ok := parseID(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, uint(42), n)

	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok := parseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")

	err := productNotFound("7", cause)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrCustomerNotFound)
	assert.Equal(t, "Invalid product ID: 7", err.Error())
	assert.Equal(t, map[string]interface{}{"code": "PRODUCT_NOT_FOUND"}, err.Extensions())

	wrapped := fmt.Errorf("resolver: %w", ErrInvalidStock)
	assert.Equal(t, InvalidStock, KindOf(wrapped))
	assert.Equal(t, UnexpectedError, KindOf(cause))

	assert.Nil(t, wrap("listing products", nil))
	assert.Equal(t, "Error listing products: boom", wrap("listing products", cause).Error())
	assert.Same(t, ErrInvalidPrice, wrap("creating product", ErrInvalidPrice))
}
