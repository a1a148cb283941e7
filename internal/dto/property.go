package dto

// PropertyPayload is the outgoing body for property create and update calls.
type PropertyPayload struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}
