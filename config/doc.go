// Package config provides configuration loading and validation for assetvault.
//
// The package handles YAML configuration files, environment variables, and CLI
// flags with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (ASSETVAULT_ prefix)
//  4. CLI flags
//
// # Environment Variables
//
// All config keys map to environment variables with ASSETVAULT_ prefix:
//   - server.port → ASSETVAULT_SERVER_PORT
//   - assets.root → ASSETVAULT_ASSETS_ROOT
//   - cors.allowed_origins → ASSETVAULT_CORS_ALLOWED_ORIGINS (comma-separated)
//
// Client credentials have a flat form for environment-only deployments:
//
//	ASSETVAULT_CLIENTS=acme,globex
//	ASSETVAULT_ACME_ID=abc
//	ASSETVAULT_ACME_SECRET=xyz
//	ASSETVAULT_GLOBEX_ID=...
//	ASSETVAULT_GLOBEX_SECRET=...
//
// A client listed in ASSETVAULT_CLIENTS without both an id and a secret is a
// fatal configuration error; the process refuses to start.
//
// # Configuration Structure
//
// The Config struct contains:
//   - Env: dev or prod (switches log output format)
//   - Server: HTTP listen port
//   - Assets: root directory holding one subdirectory per client
//   - Clients: list of client name/id/secret entries
//   - CORS: exact-match origin allow-list
//   - RateLimit: per-IP request cap and window seconds
//   - Log: logging level
package config
