// Package commands defines the boardpack CLI.
//
// Commands
//
//   - (root)   Open the landing page in the terminal
//   - check    Validate in-page links against section anchors
//   - leads    List recently captured early-access leads
//
// # Implementation
//
// The root command resolves the project directory and loads
// .boardpack/config.yaml before any subcommand runs, so every handler sees the
// same configuration.
package commands
