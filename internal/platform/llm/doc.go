// Package llm implements the generation.Client interface against the two
// supported chat-completion backends: a local LM Studio server and the
// hosted OpenAI API. Both speak the same request/response envelope; they
// differ in endpoint, authentication, and sampling temperature.
package llm
