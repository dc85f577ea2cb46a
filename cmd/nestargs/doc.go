// Nestargs resolves layered experiment arguments.
//
// Flag defaults are overridden by a YAML config file, which is in turn
// overridden by command-line flags. Flags of the main and preliminary groups
// appear at the top level of the result; every other group is nested under
// its own name.
//
// Usage:
//
//	nestargs resolve -- --lr 0.1               # resolve with defaults and config.yaml
//	nestargs resolve -- --config_file run.yaml # resolve from another config file
//	nestargs resolve --save run.yaml -- ...    # save the result as a config file
//	nestargs flags                             # list every flag by group
//	nestargs config init                       # write a config file of defaults
//	nestargs config set run.yaml network.lr 0.1
//	nestargs config show run.yaml
package main
