package j2534

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval uint32
		valid    bool
	}{
		{"below minimum", 4, false},
		{"minimum", 5, true},
		{"typical", 100, true},
		{"maximum", 65535, true},
		{"above maximum", 65536, false},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInterval(tt.interval)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPrecondition)
			}
		})
	}
}

func TestValidateVoltage(t *testing.T) {
	tests := []struct {
		name    string
		voltage uint32
		valid   bool
	}{
		{"below minimum", 4999, false},
		{"minimum", 5000, true},
		{"typical", 12000, true},
		{"maximum", 20000, true},
		{"above maximum", 20001, false},
		{"short to ground sentinel", SHORT_TO_GROUND, true},
		{"voltage off sentinel", VOLTAGE_OFF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVoltage(tt.voltage)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPrecondition)
			}
		})
	}
}

func TestSplitConfigParams(t *testing.T) {
	keep, dropped := splitConfigParams([]IoctlParameter{P2_MIN, DATA_RATE})

	assert.Equal(t, []IoctlParameter{DATA_RATE}, keep)
	require.Len(t, dropped, 1)
	assert.Equal(t, P2_MIN, dropped[0])
	assert.Equal(t, "P2_MIN", dropped[0].String())
}

func TestSplitConfigParamsAllDriverInternal(t *testing.T) {
	keep, dropped := splitConfigParams([]IoctlParameter{P1_MIN, P2_MIN, P2_MAX, P3_MAX, P4_MAX})

	assert.Empty(t, keep)
	assert.Len(t, dropped, 5)
}

func TestSplitConfigParamsPreservesOrder(t *testing.T) {
	params := []IoctlParameter{ISO15765_STMIN, DATA_RATE, P1_MIN, LOOPBACK}

	keep, dropped := splitConfigParams(params)
	assert.Equal(t, []IoctlParameter{ISO15765_STMIN, DATA_RATE, LOOPBACK}, keep)
	assert.Equal(t, []IoctlParameter{P1_MIN}, dropped)
}

func TestSplitConfigParamsEmpty(t *testing.T) {
	keep, dropped := splitConfigParams(nil)
	assert.Empty(t, keep)
	assert.Empty(t, dropped)
}
