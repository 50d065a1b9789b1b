// internal/services/helpers.go
package services

// nilIfEmpty maps an optional request field onto a nullable column.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
