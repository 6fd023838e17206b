// Package redact scrubs secrets from comparison error and warning text before
// it is printed to a job log or posted to a pull request.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access keys, bearer and basic auth headers,
// credentials embedded in URLs, and provider-specific tokens (GitHub, Slack,
// OpenAI-style keys).
package redact
