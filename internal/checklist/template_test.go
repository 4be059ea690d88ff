package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForVariant(t *testing.T) {
	cases := []struct {
		name  string
		steps int
	}{
		{"standard", 2},
		{"extended", 3},
		{"full", 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			template, err := ForVariant(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.name, template.Name)
			assert.Len(t, template.Steps, tc.steps)

			for i, step := range template.Steps {
				assert.Equal(t, i+1, step.Number)
				assert.NotEmpty(t, step.Title)
				assert.NotEmpty(t, step.Items)
			}
		})
	}
}

func TestForVariant_Unknown(t *testing.T) {
	_, err := ForVariant("nonexistent")
	assert.Error(t, err)
}

func TestValidStep(t *testing.T) {
	template, err := ForVariant("standard")
	require.NoError(t, err)

	assert.True(t, template.ValidStep(1))
	assert.True(t, template.ValidStep(2))
	assert.False(t, template.ValidStep(0))
	assert.False(t, template.ValidStep(3))
	assert.False(t, template.ValidStep(-1))
}

func TestLabel(t *testing.T) {
	template, err := ForVariant("standard")
	require.NoError(t, err)

	assert.Equal(t, "Correct Font", template.Label(2, "correctFont"))

	// Unknown keys keep their raw form so old submissions stay readable.
	assert.Equal(t, "legacyKey", template.Label(2, "legacyKey"))
	assert.Equal(t, "anything", template.Label(99, "anything"))
}
