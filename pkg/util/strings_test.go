package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustAnyToInt(t *testing.T) {
	assert.Equal(t, 120, MustAnyToInt("120"))
	assert.Equal(t, 0, MustAnyToInt("not-a-number"))
	assert.Equal(t, 0, MustAnyToInt(""))
	assert.Equal(t, 7, MustAnyToInt(7))
	assert.Equal(t, -3, MustAnyToInt("-3"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("12345"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric("-12"))
}

func TestStr2List(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Str2List("a, b, a", ","))
	assert.Empty(t, Str2List("", ","))
	assert.Equal(t, []string{"x"}, Str2List(" x ", ","))
}
