// Package match resolves free-text community item names to canonical
// game-data identifiers.
//
// Community recipe sites spell names inconsistently ("B.F. Sword",
// "BF Sword", "Death Blade"). The resolver normalizes both sides, takes an
// exact normalized match when one exists, and otherwise falls back to a
// similarity scorer; a fuzzy match is accepted only above a fixed
// confidence threshold. Ties resolve deterministically so repeated runs
// produce identical output.
//
// The scorer is an interface so the similarity algorithm can be replaced
// without touching the recipe merge logic built on top of it.
package match
