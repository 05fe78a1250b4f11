// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// unmarshals the merged Koanf tree into a `Config` instance.  Any tag
// mismatch or validation error aborts startup, so the binary never runs
// with partial, malformed, or missing configuration.
//
// Rules in use: `required`, `required_if` (store DSN and data_dir depend on
// the backend), `oneof`, `hostname_port`, `url`, and `dive` for the user
// list.  A duplicate username check runs after the tag rules because it
// spans list elements.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = validator.New()

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	if err := v.Struct(c); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Auth.Users))
	for _, u := range c.Auth.Users {
		if _, dup := seen[u.Username]; dup {
			return fmt.Errorf("auth.users: duplicate username %q", u.Username)
		}
		seen[u.Username] = struct{}{}
	}
	return nil
}
