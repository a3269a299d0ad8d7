package signatures

import "fmt"

// CatalogError reports an invalid signature catalog entry.
type CatalogError struct {
	// Entry is the family or section name (if known)
	Entry string
	// Field is the offending key
	Field string
	// Err is the underlying parse error
	Err error
}

func (e *CatalogError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("signature catalog: %s.%s: %v", e.Entry, e.Field, e.Err)
	}
	return fmt.Sprintf("signature catalog: %s: %v", e.Field, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}
