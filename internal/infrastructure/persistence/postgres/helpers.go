package postgres

// scannable abstracts pgx.Row and pgx.Rows for the scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// nullable maps an empty string onto SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
