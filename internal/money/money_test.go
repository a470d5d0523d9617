package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON_KeepsTwoDecimals(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"150.00": `"150.00"`,
		"90":     `"90.00"`,
		"220.5":  `"220.50"`,
		"0":      `"0.00"`,
		"99.999": `"100.00"`,
	} {
		b, err := json.Marshal(Require(in))
		require.NoError(t, err)
		assert.Equal(t, want, string(b), "input %s", in)
	}
}

func TestUnmarshalJSON_AcceptsStringsAndNumbers(t *testing.T) {
	t.Parallel()

	var fromString, fromNumber Amount
	require.NoError(t, json.Unmarshal([]byte(`"615.00"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`615`), &fromNumber))

	assert.True(t, fromString.Equal(decimal.RequireFromString("615.00")))
	assert.True(t, fromNumber.Equal(decimal.RequireFromString("615")))
}

func TestNew_WrapsDecimal(t *testing.T) {
	t.Parallel()

	a := New(decimal.RequireFromString("150.00"))
	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"150.00"`, string(b))
}
