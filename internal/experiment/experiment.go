package experiment

import "github.com/dshills/nestargs/internal/registry"

// Main declares the top-level output folder.
func Main(d *registry.Declarer) *registry.Declarer {
	return d.Path("path_out", "The base folder where all output is saved", registry.Default("./results/"))
}

// Preliminary declares the config file flag. It is read before the other
// groups so the file can provide their defaults.
func Preliminary(d *registry.Declarer) *registry.Declarer {
	return d.Path("config_file", "Set default values for the other arguments. CLI values still override them",
		registry.Default("config.yaml"))
}

// Data declares the dataset locations.
func Data(d *registry.Declarer) *registry.Declarer {
	return d.Path("path_train", "Path to the training samples").
		Path("path_val", "Path to the validation samples").
		Path("path_test", "Path to the test samples")
}

// Network declares the model settings.
func Network(d *registry.Declarer) *registry.Declarer {
	return d.String("network_type", "Choose the network architecture type", registry.Choices("lstm", "mlp")).
		Float("lr", "Learning rate", registry.Default(0.5))
}

// Registry returns a registry holding all reference groups.
func Registry() *registry.Registry {
	reg := registry.New()
	for _, g := range []struct {
		name string
		fn   registry.DeclareFunc
	}{
		{registry.Main, Main},
		{registry.Preliminary, Preliminary},
		{"data", Data},
		{"network", Network},
	} {
		// Names are distinct and non-empty, so Register cannot fail here.
		_ = reg.Register(g.name, g.fn)
	}
	return reg
}

// Settings is the typed form of a resolved reference configuration.
type Settings struct {
	PathOut    string `yaml:"path_out"`
	ConfigFile string `yaml:"config_file"`
	Data       struct {
		PathTrain string `yaml:"path_train"`
		PathVal   string `yaml:"path_val"`
		PathTest  string `yaml:"path_test"`
	} `yaml:"data"`
	Network struct {
		NetworkType string  `yaml:"network_type"`
		LR          float64 `yaml:"lr"`
	} `yaml:"network"`
}
