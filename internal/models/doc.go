// Package models lists the OpenAI chat models that can be used for slide
// translation with the current API key.
package models
