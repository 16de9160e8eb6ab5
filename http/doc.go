// Package http provides the HTTP surface of the pitchgate static gateway.
//
// # Routes
//
//   - /healthz: liveness check, answers 200 "ok" without authentication
//   - /*: every other path requires HTTP Basic credentials and serves the
//     matching file beneath the root directory
//
// # Responses
//
// Successful responses carry the file bytes with the content type from the
// MIME table, "Cache-Control: private, max-age=300" and
// "X-Content-Type-Options: nosniff". Failures are terse plain text with
// "Cache-Control: no-store":
//
//   - 401 Unauthorized, with a WWW-Authenticate Basic challenge
//   - 403 Forbidden, the path escapes the root
//   - 404 Not found
//   - 500 Internal Server Error, details are logged and never returned
//
// # Usage
//
//	creds, _ := pitchgate.NewCredentialSet(pitchgate.Credential{Username: "pitch", Password: "secret"})
//
//	handlerCfg := http.HandlerConfig{
//	    Realm:    "Pitch Industrial",
//	    Verifier: creds,
//	}
//	handler := http.NewHandler(&handlerCfg, gateway)
//	http.ListenAndServe(":8080", handler.Router())
//
// Dispatch exposes the authenticated request path as a function returning a
// Response value, so it can be exercised without a ResponseWriter.
package http
