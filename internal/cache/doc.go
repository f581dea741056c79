// Package cache provides the page-level translation cache. Pages are keyed
// by a SHA-256 fingerprint of their ordered run texts, and each entry holds
// the (original, translation) pairs for that page. The cache is loaded once,
// staged through Pending updates during a run and committed once at the end.
package cache
