// Package config provides configuration loading and validation for pitchgate.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (PITCHGATE_ prefix, plus deployment aliases)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
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
// All config keys map to environment variables with the PITCHGATE_ prefix:
//   - server.port → PITCHGATE_SERVER_PORT
//   - storage.path → PITCHGATE_STORAGE_PATH
//   - auth.primary.password → PITCHGATE_AUTH_PRIMARY_PASSWORD
//
// A few keys also accept the short names used by existing deployments:
//   - server.port → PORT
//   - auth.primary.username, auth.primary.password → PITCH_USER, PITCH_PASS
//   - auth.next.username, auth.next.password → PITCH_USER_NEXT, PITCH_PASS_NEXT
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Timeouts must be at least one second
//   - Log level must be debug, info, warn, or error
//   - A credential pair needs both username and password
//
// Load then requires a primary pair (or a keys file) and rejects a rotation
// pair without a primary one.
package config
