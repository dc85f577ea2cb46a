package resolve

import (
	"testing"

	"github.com/dshills/nestargs/internal/config"
	"github.com/dshills/nestargs/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(t *testing.T) *Config {
	t.Helper()
	r, _ := newResolver(fullRegistry(t, "config.yaml"))
	cfg, err := r.ResolveFile(config.File{"data": map[string]any{"path_train": "/x"}}, []string{"--lr", "0.9"})
	require.NoError(t, err)
	return cfg
}

func TestConfig_Lookup(t *testing.T) {
	cfg := resolved(t)

	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"path_out", registry.Path("./results/"), true},
		{"data.path_train", registry.Path("/x"), true},
		{"network.lr", 0.9, true},
		{"network.network_type", nil, true},
		{"network.missing", nil, false},
		{"eval.lr", nil, false},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := cfg.Lookup(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_CopiesDoNotAlias(t *testing.T) {
	cfg := resolved(t)

	g, ok := cfg.Group("network")
	require.True(t, ok)
	g["lr"] = 1.0

	m := cfg.ToMap()
	m["path_out"] = "changed"
	m["network"].(map[string]any)["lr"] = 2.0

	names := cfg.GroupNames()
	names[0] = "changed"

	v, _ := cfg.Lookup("network.lr")
	assert.Equal(t, 0.9, v)
	v, _ = cfg.Get("path_out")
	assert.Equal(t, registry.Path("./results/"), v)
	assert.Equal(t, []string{"data", "network"}, cfg.GroupNames())

	_, ok = cfg.Group("eval")
	assert.False(t, ok)
}

func TestConfig_Decode(t *testing.T) {
	var settings struct {
		PathOut    string `yaml:"path_out"`
		ConfigFile string `yaml:"config_file"`
		Data       struct {
			PathTrain string `yaml:"path_train"`
		} `yaml:"data"`
		Network struct {
			NetworkType string  `yaml:"network_type"`
			LR          float64 `yaml:"lr"`
			Dropout     *bool   `yaml:"dropout"`
		} `yaml:"network"`
	}

	require.NoError(t, resolved(t).Decode(&settings))
	assert.Equal(t, "./results/", settings.PathOut)
	assert.Equal(t, "config.yaml", settings.ConfigFile)
	assert.Equal(t, "/x", settings.Data.PathTrain)
	assert.Equal(t, 0.9, settings.Network.LR)
	assert.Empty(t, settings.Network.NetworkType)
	assert.Nil(t, settings.Network.Dropout)
}

func TestConfig_DecodeTypeMismatch(t *testing.T) {
	var bad struct {
		Network struct {
			LR []string `yaml:"lr"`
		} `yaml:"network"`
	}
	assert.Error(t, resolved(t).Decode(&bad))
}
