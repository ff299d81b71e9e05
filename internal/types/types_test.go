package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steveyegge/graphstore/internal/types"
)

func TestSchemaValidateRequiredField(t *testing.T) {
	schema := types.Schema{
		Name: "person",
		Kind: types.KindNode,
		Fields: []types.FieldSchema{
			{Name: "name", Type: types.FieldString, Required: true},
			{Name: "age", Type: types.FieldInt, Required: false},
		},
	}

	err := schema.Validate(map[string]interface{}{"name": "Alice"})
	assert.NoError(t, err)

	err = schema.Validate(map[string]interface{}{})
	assert.True(t, errors.Is(err, types.ErrSchemaViolation))

	err = schema.Validate(map[string]interface{}{"name": "Alice", "age": "old"})
	assert.True(t, errors.Is(err, types.ErrSchemaViolation))
}

func TestSchemaValidateAllowsUnknownFields(t *testing.T) {
	schema := types.Schema{Name: "node", Kind: types.KindNode}
	err := schema.Validate(map[string]interface{}{"anything": 1})
	assert.NoError(t, err)
}

func TestErrorConstructorsWrapSentinels(t *testing.T) {
	assert.True(t, errors.Is(types.NewNotFound(types.KindNode, "n1"), types.ErrNotFound))
	assert.True(t, errors.Is(types.NewDeleted(types.KindNode, "n1"), types.ErrDeleted))
	assert.True(t, errors.Is(types.NewModuleMismatch("a", "b"), types.ErrModuleMismatch))
	assert.True(t, errors.Is(types.NewIDAlreadyExists("n1"), types.ErrIDAlreadyExists))
	assert.True(t, errors.Is(types.NewSchemaViolation("s", "f", "bad"), types.ErrSchemaViolation))
}
