// Package llm talks to the chat models that translate slide text. A Model
// takes one instruction prompt plus data fragments and returns the reply as
// plain text. OpenAI and Gemini backends are provided, and Guarded adds
// retries behind a circuit breaker.
package llm
