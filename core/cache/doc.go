// Package cache provides an optional redis-backed cache for scraped pages,
// keyed by URL. The community recipe sites change rarely, so repeated
// pipeline runs within the TTL skip the network round-trip entirely.
package cache
