package domain

// EntityKind distinguishes tenants from vendors and other counterparties.
type EntityKind string

const (
	Tenant EntityKind = "TENANT"
	Vendor EntityKind = "VENDOR"
	Other  EntityKind = "OTHER"
)

// Entity is a counterparty (tenant, vendor, ...) belonging to one property.
type Entity struct {
	ID         int64      `json:"id"`
	PropertyID int64      `json:"property_id"`
	Name       string     `json:"name"`
	Kind       EntityKind `json:"kind"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	IsDeleted  bool       `json:"is_deleted"`
}

// Key returns the collection cache key.
func (e Entity) Key() int64 { return e.ID }
