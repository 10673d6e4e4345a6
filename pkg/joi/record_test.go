package joi_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/joi/pkg/joi"
)

type model struct {
	ID    int
	Name  string
	Age   int
	Email string
}

type schema struct {
	ID    joi.Number
	Name  joi.String
	Age   joi.Number
	Email joi.String
}

func newSchema() schema {
	return schema{
		ID:    joi.BuildNumber().Positive().Less(100),
		Name:  joi.BuildString().Pattern("[A-Z][a-z]+").Maximum(31).Required(),
		Age:   joi.BuildNumber().Minimum(18).Maximum(65),
		Email: joi.BuildString().Pattern(`^\S+@\S+$`).Maximum(49),
	}
}

func fields(m model, s schema) []joi.Field {
	return []joi.Field{
		joi.Int("id", m.ID, s.ID),
		joi.Str("name", m.Name, s.Name),
		joi.Int("age", m.Age, s.Age),
		joi.Str("email", m.Email, s.Email),
	}
}

func TestValidate_Record(t *testing.T) {
	t.Parallel()

	s := newSchema()

	t.Run("all fields pass", func(t *testing.T) {
		m := model{ID: 10, Name: "Leonardo", Age: 18, Email: "leonardo@gmail.com"}
		res := joi.Validate(fields(m, s)...)
		assert.False(t, res.Failed())
		assert.Empty(t, res.Message())
		assert.Empty(t, res.Field())
		assert.NoError(t, res.Err())
	})

	t.Run("reports first failing field", func(t *testing.T) {
		m := model{ID: 10, Name: "leonardo", Age: 5, Email: "x"}
		res := joi.Validate(fields(m, s)...)
		require.True(t, res.Failed())
		assert.Equal(t, "name", res.Field())
		assert.Equal(t, "pattern validation failed", res.Message())
		assert.Equal(t, "name: pattern validation failed", res.String())
	})

	t.Run("failure matches the field evaluated alone", func(t *testing.T) {
		m := model{ID: 10, Name: "Leonardo", Age: 70, Email: "leonardo@gmail.com"}
		res := joi.Validate(fields(m, s)...)
		alone := s.Age.Validate(70)

		require.True(t, res.Failed())
		assert.Equal(t, alone.Message(), res.Message())
		assert.Equal(t, alone.Key(), res.Key())
		assert.Equal(t, "age", res.Field())
	})

	t.Run("empty record passes", func(t *testing.T) {
		assert.False(t, joi.Validate().Failed())
	})
}

func TestValidate_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	// An invalid pattern after the failing field would surface as a schema
	// error if it were evaluated.
	broken := joi.NewString().Pattern("(")

	res := joi.Validate(
		joi.Int("a", 1, joi.NewNumber().Positive()),
		joi.Int("b", -1, joi.NewNumber().Positive()),
		joi.Str("c", "x", broken),
	)

	require.True(t, res.Failed())
	assert.Equal(t, "b", res.Field())
	assert.Equal(t, "must be positive, got -1", res.Message())
	assert.False(t, res.IsSchemaError())

	later := joi.Validate(joi.Str("c", "x", broken))
	assert.True(t, later.IsSchemaError())
}

func TestValidate_DispatchesOnDeclaredKind(t *testing.T) {
	t.Parallel()

	// the string "5" is never treated as a number
	res := joi.Validate(joi.Str("code", "5", joi.NewString().Alpha()))
	require.True(t, res.Failed())
	assert.Equal(t, "validation.alpha", res.Key())

	f := joi.Int("n", 5, joi.NewNumber())
	assert.Equal(t, joi.KindNumber, f.Kind())
	assert.Equal(t, "number", f.Kind().String())
	assert.Equal(t, "n", f.Name())
	assert.Equal(t, "string", joi.Str("s", "", joi.NewString()).Kind().String())

	var zero joi.Field
	res = joi.Validate(zero)
	require.True(t, res.Failed())
	assert.True(t, res.IsSchemaError())
	assert.ErrorIs(t, res.Err(), joi.ErrUnknownKind)
	assert.Equal(t, "unknown", zero.Kind().String())
}

func TestKey(t *testing.T) {
	t.Parallel()

	num := joi.Key("age", 17, joi.NewNumber().Minimum(18))
	assert.Equal(t, joi.KindNumber, num.Kind())
	assert.Equal(t, "age: must be at least 18, got 17", num.Validate().String())

	str := joi.Key("name", "John", joi.NewString().Required())
	assert.Equal(t, joi.KindString, str.Kind())
	assert.False(t, str.Validate().Failed())

	mismatch := joi.Key("name", 5, joi.NewString())
	res := mismatch.Validate()
	require.True(t, res.IsSchemaError())
	assert.Equal(t, "name", res.Field())
	assert.ErrorIs(t, res.Err(), joi.ErrUnknownKind)
}

func TestValidate_ErrorConversion(t *testing.T) {
	t.Parallel()

	t.Run("validation failure", func(t *testing.T) {
		res := joi.Validate(joi.Int("age", 5, joi.NewNumber().Minimum(18)))
		err := res.Err()
		require.Error(t, err)

		assert.ErrorIs(t, err, joi.ErrValidationFailed)
		assert.NotErrorIs(t, err, joi.ErrInvalidSchema)
		assert.True(t, joi.IsValidationFailure(err))
		assert.False(t, joi.IsSchemaError(err))
		assert.Equal(t, "age: must be at least 18, got 5", err.Error())

		vf := joi.ExtractValidationFailure(err)
		require.NotNil(t, vf)
		assert.Equal(t, "age", vf.Field)
		assert.Equal(t, "validation.min", vf.Key)
		assert.Equal(t, map[string]any{"min": 18, "value": 5}, vf.Params)
	})

	t.Run("schema error names field and rule", func(t *testing.T) {
		res := joi.Validate(joi.Str("name", "x", joi.NewString().Pattern("[")))
		require.True(t, res.Failed())
		assert.Contains(t, res.Message(), "invalid schema: name: pattern")

		var se *joi.SchemaError
		require.True(t, errors.As(res.Err(), &se))
		assert.Equal(t, "name", se.Field)
		assert.Equal(t, "pattern", se.Rule)
		assert.Nil(t, joi.ExtractValidationFailure(res.Err()))
	})

	t.Run("wrapped errors are detected", func(t *testing.T) {
		res := joi.Validate(joi.Int("n", -1, joi.NewNumber().Positive()))
		wrapped := errors.Join(errors.New("request rejected"), res.Err())
		assert.True(t, joi.IsValidationFailure(wrapped))
		assert.NotNil(t, joi.ExtractValidationFailure(wrapped))
	})

	t.Run("nil errors", func(t *testing.T) {
		assert.False(t, joi.IsValidationFailure(nil))
		assert.False(t, joi.IsSchemaError(nil))
		assert.Nil(t, joi.ExtractValidationFailure(nil))
	})
}

func TestResult_Invariants(t *testing.T) {
	t.Parallel()

	results := []joi.Result{
		joi.OK(),
		joi.NewNumber().Minimum(1).Validate(0),
		joi.NewString().Required().Validate(""),
		joi.NewString().Pattern("(").Validate("x"),
		joi.Validate(joi.Int("x", 0, joi.NewNumber().Negative())),
	}

	for _, res := range results {
		assert.Equal(t, res.Failed(), res.Message() != "", res.String())
		assert.Equal(t, res.Failed(), res.Err() != nil, res.String())
	}

	assert.Equal(t, "ok", joi.OK().String())
}

func TestResult_ParamsAreCopied(t *testing.T) {
	t.Parallel()

	res := joi.NewNumber().Minimum(10).Validate(1)
	params := res.Params()
	params["min"] = 0

	assert.Equal(t, 10, res.Params()["min"])
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	res := joi.Invalid("age", "validation.type", "must be a number", map[string]any{"type": "number"})
	require.True(t, res.Failed())
	assert.Equal(t, "age", res.Field())
	assert.Equal(t, "validation.type", res.Key())
	assert.Equal(t, "age: must be a number", res.Err().Error())
	assert.True(t, joi.IsValidationFailure(res.Err()))

	empty := joi.Invalid("x", "", "", nil)
	assert.True(t, empty.Failed())
	assert.Equal(t, "validation failed", empty.Message())
}
