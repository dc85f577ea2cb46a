// Package config loads and writes the YAML configuration files that seed
// argument resolution.
//
// A configuration file holds top-level scalars for the flattened main flags
// and one nested mapping per argument group:
//
//	path_out: ./results/
//	data:
//	  path_train: /data/train
//	network:
//	  lr: 0.9
//
// Every key is optional. [Load] reports its outcome as a [Result] so callers
// can tell a missing file ([StatusMissing]) from an unreadable one
// ([StatusInvalid]); neither stops resolution. [Save] and [Encode] write a
// resolved tree back in the same shape, omitting unset values unless asked
// to include them.
package config
