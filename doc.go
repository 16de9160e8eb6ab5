// Package pitchgate provides an access-controlled static file gateway for
// small private sites.
//
// Pitchgate serves files from a single root directory behind HTTP Basic
// authentication. Requests are authenticated against a fixed credential set,
// mapped onto the root with a traversal-proof path resolver, and answered
// with the file's bytes or a terse typed error.
//
// # Key Components
//
//   - CredentialSet: current and optional rotation credentials with constant-time verification
//   - ResolvePath: percent-decoding, normalization and root containment of request paths
//   - ContentTypeFor: the fixed extension to content type table
//   - Gateway: resolve, stat, directory index substitution and read
//   - FileStorage: interface for the read-only filesystem (see the filesystem package)
//
// # Errors
//
// Failures are reported through sentinel errors that map onto HTTP statuses:
//
//   - ErrUnauthenticated: 401
//   - ErrForbidden: 403
//   - ErrNotFound: 404
//   - anything else: 500
//
// # Example Usage
//
//	creds, err := pitchgate.NewCredentialSet(pitchgate.Credential{Username: "pitch", Password: "secret"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gateway, err := pitchgate.NewGateway("/srv/pitch", storage)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if creds.Verify(r.Header.Get("Authorization")) {
//	    asset, err := gateway.Fetch(ctx, r.URL.EscapedPath())
//	}
//
// See the http package for the HTTP surface and the filesystem package for
// the os.Root backed storage.
package pitchgate
