// Package recipes turns community item recipe tables into canonical
// component mappings.
//
// The mirror's item export has no recipe data, so recipes are scraped
// from pinned community sites, resolved against canonical names via
// core/match, and merged across sources under an operator-configured
// precedence policy. A manual override file always wins and is applied
// last. Every unresolved name and cross-source conflict ends up in the
// merge Report so nothing is dropped silently.
package recipes
