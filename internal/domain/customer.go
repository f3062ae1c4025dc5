package domain

type Customer struct {
	ID          int     `json:"customer_id"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Observation *string `json:"observation,omitempty"`
	Address     *string `json:"address,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
}
