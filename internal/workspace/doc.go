// Package workspace manages the ephemeral working directory a sync run
// clones repositories into.
//
// The directory doubles as the GOPATH exposed to generate-commands, so it
// must exist for the whole run and is intentionally left behind afterwards:
// operators inspect or reuse the clones and remove the directory themselves.
// The completion message names the path to delete.
package workspace
