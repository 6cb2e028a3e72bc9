package domain

// Status is the soft-delete state shared by products and clients.
type Status string

const (
	StatusActive   Status = "activo"
	StatusInactive Status = "inactivo"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}
