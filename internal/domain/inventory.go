package domain

import "time"

// DefaultMinQuantity is the low-stock threshold for materials without their own.
const DefaultMinQuantity = 100

// Material is an inventory item.
type Material struct {
	ID          int64
	Name        string
	Quantity    float64
	Unit        string
	Category    string
	Supplier    string
	Cost        float64
	MinQuantity *float64
	ProjectID   *int64
	LastUpdated time.Time
}

// Threshold returns the material's own minimum, or def when unset.
func (m *Material) Threshold(def float64) float64 {
	if m.MinQuantity != nil {
		return *m.MinQuantity
	}
	return def
}

// IsLowStock reports whether quantity has fallen below the threshold.
func (m *Material) IsLowStock(def float64) bool {
	return m.Quantity < m.Threshold(def)
}

// Value is quantity times unit cost.
func (m *Material) Value() float64 {
	return m.Quantity * m.Cost
}

// MaterialUpdateParams carries a partial update. Nil fields are left unchanged.
// ProjectID pointing at 0 clears the reference.
type MaterialUpdateParams struct {
	Name        *string
	Quantity    *float64
	Unit        *string
	Category    *string
	Supplier    *string
	Cost        *float64
	MinQuantity *float64
	ProjectID   *int64
	LastUpdated time.Time
}

// Blueprint is a stored drawing revision.
type Blueprint struct {
	ID         int64
	Name       string
	Version    int
	Size       int64
	Path       string
	Checksum   string
	ProjectID  *int64
	UploadedAt time.Time

	// Content is only populated by explicit downloads.
	Content []byte
}
