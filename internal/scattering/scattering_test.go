package scattering_test

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/escat/internal/scattering"
)

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"ADP", "IMP", "PIE"}, scattering.Available(fullProperties()))

	piezo, dielectric := 0.5, 10.
	assert.Equal(t, []string{"PIE"}, scattering.Available(&scattering.MaterialProperties{
		PiezoelectricCoefficient: &piezo,
		StaticDielectric:         &dielectric,
	}))

	assert.Empty(t, scattering.Available(&scattering.MaterialProperties{}))
}

func TestNew(t *testing.T) {
	state := testState(false)
	for _, name := range scattering.Available(fullProperties()) {
		mechanism, err := scattering.New(name, fullProperties(), state, nil)
		require.NoError(t, err)
		assert.Equal(t, name, mechanism.Name())
		assert.NotEmpty(t, mechanism.RequiredProperties())
	}

	_, err := scattering.New("POP", fullProperties(), state, nil)
	assert.Error(t, err, "polar optical scattering is not an elastic mechanism")
}

func TestScalarOrPair_UnmarshalTOML(t *testing.T) {
	var target struct {
		D scattering.ScalarOrPair `toml:"d"`
	}

	_, err := toml.Decode(`d = 8.6`, &target)
	require.NoError(t, err)
	assert.False(t, target.D.IsPair())
	assert.Equal(t, 8.6, target.D.First())
	assert.Equal(t, 8.6, target.D.Second())

	_, err = toml.Decode(`d = [8, 9.1]`, &target)
	require.NoError(t, err)
	assert.True(t, target.D.IsPair())
	assert.Equal(t, 8., target.D.First())
	assert.Equal(t, 9.1, target.D.Second())

	_, err = toml.Decode(`d = "large"`, &target)
	assert.Error(t, err)

	_, err = toml.Decode(`d = [1, 2, 3]`, &target)
	assert.Error(t, err)
}
