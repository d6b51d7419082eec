// Package git wraps the git command line tool.
//
// All repository access goes through the git binary: range resolution,
// log queries, per-commit patches, checkout and the backport.* config
// store. Nothing in here reimplements git semantics.
package git
