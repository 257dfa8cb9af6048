// Package cookie provides HTTP cookie management with HMAC signing.
//
// The Manager handles plain cookies and, when configured with a [Signer],
// signed cookies whose values cannot be forged without the server secret.
//
// # Signed Values
//
// A [Signer] encodes a value as value + "." + hex(HMAC-SHA256(secret, value)):
//
//	s, err := cookie.NewSigner(os.Getenv("SESSION_SECRET"))
//	if err != nil {
//		log.Fatal(err) // empty or short secret
//	}
//	encoded, _ := s.Encode("3f1c...")
//	id, ok := s.Decode(encoded)
//
// Decode never panics on attacker-controlled input; every malformed,
// truncated or forged value decodes to ("", false).
//
// # Manager
//
//	m := cookie.New(
//		cookie.WithSigner(s),
//		cookie.WithSecure(true),
//	)
//	err := m.SetSigned(w, "gh_session", sessionID, 86400)
//	value, err := m.GetSigned(r, "gh_session")
//
// # Configuration
//
//   - [WithSigner]: enable signed cookies
//   - [WithDomain]: set the cookie domain
//   - [WithPath]: set the cookie path (default: "/")
//   - [WithSecure]: set the Secure flag
//   - [WithHTTPOnly]: set the HttpOnly flag (default: true)
//   - [WithSameSite]: set the SameSite attribute (default: Lax)
//
// # Errors
//
//   - [ErrNotFound]: cookie does not exist
//   - [ErrNoSecret]: signing requested without a signer or secret
//   - [ErrBadSecret]: secret shorter than 32 bytes
//   - [ErrBadSig]: signature verification failed
package cookie
