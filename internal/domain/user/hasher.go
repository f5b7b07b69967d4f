package user

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// VerifyPassword checks password against the stored hash.
func (u *User) VerifyPassword(password string, hasher PasswordHasher) error {
	if err := hasher.Verify(password, u.passwordHash); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
