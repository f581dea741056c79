// Package processor runs pptrans over one deck or a batch of decks. It
// copies the input, selects pages, drives the extract, plan, prompt,
// reconcile and write steps of the translation package and commits the
// page cache.
package processor
