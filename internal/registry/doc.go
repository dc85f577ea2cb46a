// Package registry declares the flag groups that make up an experiment's
// argument surface.
//
// A [Registry] maps group names to [DeclareFunc] values. Each function adds
// [FlagSpec] declarations to a [Declarer] and returns it, so declarations
// chain:
//
//	reg := registry.New()
//	reg.Register("network", func(d *registry.Declarer) *registry.Declarer {
//		return d.String("network_type", "Network architecture", registry.Choices("lstm", "mlp")).
//			Float("lr", "Learning rate", registry.Default(0.5))
//	})
//
// The group names [Main] and [Preliminary] are reserved: their flags are
// flattened into the top level of a resolved configuration. Every other
// group becomes its own nested namespace.
//
// [Registry.Groups] calls every declaration function on a fresh declarer and
// validates the combined surface. A flag name declared twice is reported as
// a [*DuplicateFlagError].
package registry
