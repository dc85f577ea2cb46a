package experiment

import (
	"testing"

	"github.com/dshills/nestargs/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	groups, err := Registry().Groups()
	require.NoError(t, err)

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{registry.Main, registry.Preliminary, "data", "network"}, names)

	network := groups[3]
	lr, ok := network.Lookup("lr")
	require.True(t, ok)
	def, _ := lr.Default()
	assert.Equal(t, 0.5, def)

	typ, ok := network.Lookup("network_type")
	require.True(t, ok)
	assert.Equal(t, []string{"lstm", "mlp"}, typ.Choices())

	cfgFile, ok := groups[1].Lookup("config_file")
	require.True(t, ok)
	def, _ = cfgFile.Default()
	assert.Equal(t, registry.Path("config.yaml"), def)
}
