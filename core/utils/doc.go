// Package utils contains small type-coercion helpers for the loosely typed
// fields found in game-data JSON exports.
package utils
