package application

// SetKeyGenerator replaces the random key source for tests.
func (s *APIKeyService) SetKeyGenerator(f func() (string, error)) {
	s.newKey = f
}
