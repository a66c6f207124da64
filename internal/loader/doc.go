// Package loader turns a configuration file path into a resolved tree: it
// loads the YAML, resolves rootdir-relative paths, follows config_files
// links and merges everything with fixed precedence.
//
// Precedence, strongest first: the requested file's own values, then the
// linked files in the order they are listed. Links are followed
// recursively; a file that links back to itself yields a *CycleError.
package loader
