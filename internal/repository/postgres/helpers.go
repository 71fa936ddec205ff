package postgres

// nullIfEmpty maps an empty string to SQL NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// orEmpty maps a NULL text column back to the empty string.
func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
