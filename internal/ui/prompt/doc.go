// Package prompt provides interactive terminal prompts.
//
// All prompts render to stderr so stdout stays clean for piping.
package prompt
