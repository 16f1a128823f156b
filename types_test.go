package transpiler

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSemanticTypeString(t *testing.T) {
	assert.Equal(t, "string", TypeString.String())
	assert.Equal(t, "64-bit integer", TypeLong.String())
	assert.Equal(t, "unset", TypeUnset.String())
}

func TestSemanticTypeOneOf(t *testing.T) {
	assert.True(t, TypeString.OneOf(TypeInteger, TypeString))
	assert.False(t, TypeBool.OneOf(TypeInteger, TypeString))
	assert.False(t, TypeUnset.OneOf())
}

func TestSemanticTypeNumeric(t *testing.T) {
	assert.True(t, TypeInteger.Numeric())
	assert.True(t, TypeOctal.Numeric())
	assert.False(t, TypeString.Numeric())
}
