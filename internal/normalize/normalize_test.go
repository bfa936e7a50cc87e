package normalize_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolfLobo/toon/internal/normalize"
	"github.com/RolfLobo/toon/internal/value"
)

func TestValuePrimitives(t *testing.T) {
	v, err := normalize.Value(42, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int("42"), v)

	v, err = normalize.Value("hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = normalize.Value(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestValueFloatWholeNumberBecomesInt(t *testing.T) {
	v, err := normalize.Value(3.0, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int("3"), v)
}

func TestValueFloatFractional(t *testing.T) {
	v, err := normalize.Value(3.5, nil)
	require.NoError(t, err)
	n, ok := v.(value.Number)
	require.True(t, ok)
	assert.False(t, n.IsInt)
}

func TestValueNaNAndInfBecomeNull(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		v, err := normalize.Value(f, nil)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestValueSliceAndMap(t *testing.T) {
	in := map[string]any{"b": 2, "a": 1}
	v, err := normalize.Value(in, nil)
	require.NoError(t, err)
	obj, ok := v.(value.Object)
	require.True(t, ok)
	require.Len(t, obj.Fields, 2)
	// keys are sorted for determinism
	assert.Equal(t, "a", obj.Fields[0].Key)
	assert.Equal(t, "b", obj.Fields[1].Key)
}

func TestValueStructHonorsTagAndOmitempty(t *testing.T) {
	type Row struct {
		ID   int    `toon:"id"`
		Name string `toon:"name,omitempty"`
		Skip string `toon:"-"`
	}
	v, err := normalize.Value(Row{ID: 1}, nil)
	require.NoError(t, err)
	obj := v.(value.Object)
	require.Len(t, obj.Fields, 1)
	assert.Equal(t, "id", obj.Fields[0].Key)
}

func TestValueStructLowercasesUntaggedFields(t *testing.T) {
	type Row struct {
		ID int
	}
	v, err := normalize.Value(Row{ID: 7}, nil)
	require.NoError(t, err)
	obj := v.(value.Object)
	require.Len(t, obj.Fields, 1)
	assert.Equal(t, "id", obj.Fields[0].Key)
}

func TestValueTimeUsesFormatter(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	v, err := normalize.Value(ts, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05.000Z", v)
}

func TestValueTimeCustomFormatter(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	v, err := normalize.Value(ts, func(t time.Time) string { return "custom" })
	require.NoError(t, err)
	assert.Equal(t, "custom", v)
}

func TestValuePointerAndNilPointer(t *testing.T) {
	n := 5
	v, err := normalize.Value(&n, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int("5"), v)

	var pn *int
	v, err = normalize.Value(pn, nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestValueNilSliceBecomesEmptyArray(t *testing.T) {
	var s []int
	v, err := normalize.Value(s, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Array{}, v)
}

func TestValueChannelNormalizesToNull(t *testing.T) {
	v, err := normalize.Value(make(chan int), nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestValuePassesThroughDomainTypes(t *testing.T) {
	obj := value.NewObject(value.Field{Key: "a", Value: value.Int("1")})
	v, err := normalize.Value(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, obj, v)
}
