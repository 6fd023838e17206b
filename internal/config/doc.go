// Package config loads and merges apidelta configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (APIDELTA_SEVERITY, APIDELTA_FORMAT,
//     GITHUB_STEP_SUMMARY, etc.), after a .env file in the working directory
//     has been loaded into the environment
//  3. Config file ($XDG_CONFIG_HOME/apidelta/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single key.
package config
