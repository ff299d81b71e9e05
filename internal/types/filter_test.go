package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steveyegge/graphstore/internal/types"
)

func TestFilterEmptyMatchesEverything(t *testing.T) {
	f := types.Filter{}
	assert.True(t, f.MatchRecord(map[string]interface{}{"id": "n1"}, nil, nil))
}

func TestFilterLiteralMatch(t *testing.T) {
	f := types.Filter{"type": types.Literal("person")}
	assert.True(t, f.MatchRecord(map[string]interface{}{"type": "person"}, nil, nil))
	assert.False(t, f.MatchRecord(map[string]interface{}{"type": "org"}, nil, nil))
}

func TestFilterNumericLiteralCoercion(t *testing.T) {
	f := types.Filter{"count": types.Literal(3)}
	assert.True(t, f.MatchRecord(map[string]interface{}{"count": 3.0}, nil, nil))
}

func TestFilterFuncPredicate(t *testing.T) {
	f := types.Filter{"age": types.Func(func(v interface{}) bool {
		n, ok := v.(int)
		return ok && n >= 18
	})}
	assert.True(t, f.MatchRecord(map[string]interface{}{"age": 21}, nil, nil))
	assert.False(t, f.MatchRecord(map[string]interface{}{"age": 10}, nil, nil))
}

func TestFilterDataAndMetadataSubMaps(t *testing.T) {
	data := map[string]interface{}{"name": "Alice"}
	metadata := map[string]interface{}{"deleted": false}

	byData := types.Filter{"data.name": types.Literal("Alice")}
	assert.True(t, byData.MatchRecord(map[string]interface{}{}, metadata, data))

	byMeta := types.Filter{"metadata.deleted": types.Literal(false)}
	assert.True(t, byMeta.MatchRecord(map[string]interface{}{}, metadata, data))
}

func TestFilterMissingKeyFails(t *testing.T) {
	f := types.Filter{"nope": types.Literal("x")}
	assert.False(t, f.MatchRecord(map[string]interface{}{"id": "n1"}, nil, nil))
}
