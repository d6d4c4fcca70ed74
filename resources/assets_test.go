package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoLoadsAndCaches(t *testing.T) {
	first, err := Logo(ActiveIcon)
	require.NoError(t, err)
	assert.Equal(t, ActiveIcon, first.Name())
	assert.Contains(t, string(first.Content()), "<svg")

	second := MustLogo(ActiveIcon)
	assert.Same(t, first, second)

	assert.NotNil(t, MustLogo(PausedIcon))
}

func TestLogoMissing(t *testing.T) {
	_, err := Logo("missing.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustLogo("missing.svg") })
}
