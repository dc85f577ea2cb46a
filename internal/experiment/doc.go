// Package experiment declares the argument groups of the reference training
// script: output location, config file, dataset paths and network settings.
package experiment
