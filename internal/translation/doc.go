// Package translation implements the page-level translation round-trip:
// extracting runs from slides, planning which runs are served from the page
// cache and which go to the language model, building the single batched
// prompt, reconciling the model's line-oriented reply, and writing final
// text back onto the runs.
package translation
