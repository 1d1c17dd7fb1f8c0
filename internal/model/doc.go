// Package model defines the immutable data produced by one build
// invocation: the BuildResult snapshot and the well-known build property
// names the synchronizer recovers compiler configuration from.
package model
