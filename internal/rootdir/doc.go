// Package rootdir resolves path-like configuration values against the
// rootdir of the mapping that holds them, and turns them back into relative
// paths before a tree is written out.
//
// A key is path-like when the configured Matcher accepts it. The default
// rules accept download_dir, someDir, myFile or input_file_list and reject
// profile or nadir. The key rootdir itself is never rewritten.
package rootdir
