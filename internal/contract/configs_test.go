package contract

import (
	"testing"

	"github.com/huangsam/casemap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:        10,
		Precision:    1,
		Output:       "text",
		StoreBackend: "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(in *ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "zero limit",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "limit above maximum",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "invalid output mode",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet output",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: false,
		},
		{
			name:        "uppercase output is normalized",
			mutate:      func(in *ConfigRawInput) { in.Output = "JSON" },
			expectError: false,
		},
		{
			name:        "invalid store backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "oracle" },
			expectError: true,
		},
		{
			name:        "none store backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "none" },
			expectError: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validInput()
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	// Empty generation settings fall back to defaults
	assert.Equal(t, DefaultGenerateBaseURL, cfg.GenerateBaseURL)
	assert.Equal(t, DefaultGenerateModel, cfg.GenerateModel)
	assert.Equal(t, DefaultGenerateCount, cfg.GenerateCount)
	assert.Equal(t, DefaultGenerateParallel, cfg.GenerateParallel)
	assert.Equal(t, DefaultGenerateRetries, cfg.GenerateRetries)

	// Empty color spelling means colors on
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateClamping(t *testing.T) {
	input := validInput()
	input.Precision = 9
	input.GenerateParallel = 100
	input.GenerateRetries = -5
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, 2, cfg.Precision)
	assert.Equal(t, MaxGenerateParallel, cfg.GenerateParallel)
	assert.Equal(t, DefaultGenerateRetries, cfg.GenerateRetries)
}

func TestProcessAndValidateOutputModes(t *testing.T) {
	for _, out := range []string{"text", "csv", "json", "parquet"} {
		input := validInput()
		input.Output = out
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, schema.OutputMode(out), cfg.Output)
	}
}

func TestParseYesNo(t *testing.T) {
	assert.True(t, parseYesNo("yes"))
	assert.True(t, parseYesNo("TRUE"))
	assert.True(t, parseYesNo("1"))
	assert.True(t, parseYesNo(" on "))
	assert.True(t, parseYesNo(""))
	assert.False(t, parseYesNo("no"))
	assert.False(t, parseYesNo("false"))
	assert.False(t, parseYesNo("0"))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{ResultLimit: 7, Output: schema.JSONOut}
	clone := cfg.Clone()
	clone.ResultLimit = 99
	assert.Equal(t, 7, cfg.ResultLimit)
	assert.Equal(t, schema.JSONOut, clone.Output)
}
