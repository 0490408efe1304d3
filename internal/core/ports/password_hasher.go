package ports

// PasswordHasher abstracts the one-way credential transform so the core does
// not depend on a specific algorithm.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether plaintext matches the stored digest. A
	// malformed digest verifies as false, never as an error.
	Verify(password, digest string) bool
}
