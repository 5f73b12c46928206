// Package cdragon is the thin client for the CommunityDragon-style
// game-data mirror. It fetches the Units, Traits, and Items exports for one
// TFT set and maps the loosely-typed JSON into the canonical record types
// the rest of the pipeline consumes.
package cdragon
