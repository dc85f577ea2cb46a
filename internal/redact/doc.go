// Package redact masks secrets in a resolved configuration before it is
// displayed.
//
// Two rules apply. Flags whose names match one of the configured glob
// patterns (e.g. "*token*", "*password*") have their whole value replaced
// with [REDACTED]. Every other string value is scanned with regex
// heuristics for common secret shapes: JWTs, private key blocks, AWS access
// key IDs, bearer tokens, credentials embedded in URLs, and
// provider-specific tokens (Anthropic, OpenAI, GitHub, Slack, Hugging Face).
//
// Redaction never applies to saved configuration files, which must
// round-trip unchanged.
package redact
