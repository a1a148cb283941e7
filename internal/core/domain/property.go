package domain

// Property is a rental property. Nearly every other resource collection is
// scoped to the currently selected ("active") property.
type Property struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	IsDeleted bool   `json:"is_deleted"`
}

// Key returns the collection cache key.
func (p Property) Key() int64 { return p.ID }
