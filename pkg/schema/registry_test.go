package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/joi/pkg/joi"
	"github.com/dmitrymomot/joi/pkg/schema"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	code, err := schema.NewRecord("code", schema.StringField("value", joi.NewString().Required().Num()))
	require.NoError(t, err)

	reg, err := schema.NewRegistry(userRecord(t), code, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"code", "user"}, reg.Names())

	rec, ok := reg.Get("code")
	require.True(t, ok)
	assert.Same(t, code, rec)

	_, ok = reg.Get("missing")
	assert.False(t, ok)

	res, err := reg.Validate("code", map[string]any{"value": "12a"})
	require.NoError(t, err)
	assert.Equal(t, "value: can only contain 0-9", res.String())

	_, err = reg.Validate("missing", nil)
	assert.ErrorIs(t, err, schema.ErrSchemaNotFound)
}

func TestNewRegistry_Duplicate(t *testing.T) {
	t.Parallel()

	_, err := schema.NewRegistry(userRecord(t), userRecord(t))
	assert.ErrorIs(t, err, schema.ErrDuplicateSchema)
}
