// Package cli provides the interactive POS back-office command-line client.
//
// It wires configuration, local session storage, the HTTP client, and the
// session coordinator, then runs a REPL. Typical flow: verify the stored
// token, log in if needed, and issue resource commands.
//
// Key features:
//   - Login / Logout / Verify / WhoAmI
//   - Generic get, post, put, update and delete against API resources
//   - Automatic logout on 401 with a "log in again" notice
//   - Optional Prometheus metrics endpoint
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
