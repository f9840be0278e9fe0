// Package config provides configuration loading and validation for servit.
//
// The package handles YAML, TOML and JSON configuration files, environment
// variables, and CLI flags with automatic merging and validation using
// go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (SERVIT_ prefix)
//  4. CLI flags
//
// Without explicit files, servit.yaml (or .toml, .json) in the working
// directory is read if present.
//
// # Usage
//
//	cfg, err := config.Load([]string{"servit.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with SERVIT_ prefix:
//   - server.port → SERVIT_SERVER_PORT
//   - delivery.dir → SERVIT_DELIVERY_DIR
//   - delivery.compress → SERVIT_DELIVERY_COMPRESS
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port, h2c and the profile query parameter
//   - Delivery: root directory, max-age, index file and compression
//   - Profiles: named overrides of Delivery, e.g. profiles.2.index_file
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//   - Env: dev or prod, selecting the log format
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - max_age must not be negative
//   - index_file must be a single path element
//   - Log level must be debug, info, warn, or error
package config
