package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDec2_MarshalJSON_FixedPrecision(t *testing.T) {
	b, err := json.Marshal(Dec2(110))
	require.NoError(t, err)
	assert.Equal(t, `"110.00"`, string(b))

	b, err = json.Marshal(Dec2(99.9))
	require.NoError(t, err)
	assert.Equal(t, `"99.90"`, string(b))
}

func TestDec3_MarshalJSON_FixedPrecision(t *testing.T) {
	b, err := json.Marshal(Dec3(3.1))
	require.NoError(t, err)
	assert.Equal(t, `"3.100"`, string(b))
}

func TestDec4_MarshalJSON_FixedPrecision(t *testing.T) {
	b, err := json.Marshal(Dec4(42.1234))
	require.NoError(t, err)
	assert.Equal(t, `"42.1234"`, string(b))
}

func TestDec2_UnmarshalJSON_StringAndNumber(t *testing.T) {
	var d Dec2
	require.NoError(t, json.Unmarshal([]byte(`"99.90"`), &d))
	assert.InDelta(t, 99.9, float64(d), 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`110`), &d))
	assert.InDelta(t, 110.0, float64(d), 1e-9)
}

func TestDec2_UnmarshalJSON_WrongType(t *testing.T) {
	var d Dec2
	err := json.Unmarshal([]byte(`[1]`), &d)
	require.ErrorIs(t, err, ErrInvalidDecimal)
}

func TestDec2_UnmarshalJSON_BadString(t *testing.T) {
	var d Dec2
	require.Error(t, json.Unmarshal([]byte(`"12,5"`), &d))
}

func TestDecimal_RoundTripIsStable(t *testing.T) {
	orig := Dec2(72.5)
	b1, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Dec2
	require.NoError(t, json.Unmarshal(b1, &back))

	b2, err := json.Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, b1, b2, "marshal after round trip must produce identical bytes")
}
