// Package auth implements credential storage, password hashing, and
// stateless JWT session tokens.
//
// Registration and login flow through Service, which wraps the identity
// repository, the bcrypt hasher, and the token issuer. Tokens carry the
// account email as subject and are validated by signature and expiry
// alone; no server-side session state exists, so logout is a client-side
// cookie clear.
//
// Login failures are deliberately uniform: an unknown email and a wrong
// password both yield ErrInvalidCredentials so the API cannot be used to
// probe which addresses are registered.
package auth
