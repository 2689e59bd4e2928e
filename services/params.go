package services

// Composite inputs for the client create/update workflows. Nested address
// and user payloads are parsed into these as a whole instead of being sliced
// out of a generic map.

type AddressParams struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type UserParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

type ClientParams struct {
	CompanyName     string        `json:"company_name" validate:"required"`
	PersonalName    string        `json:"personal_name" validate:"required"`
	PhoneNumber     string        `json:"phone_number" validate:"required"`
	Address         AddressParams `json:"address"`
	ShippingAddress AddressParams `json:"shipping_address"`
	SameAsMain      bool          `json:"same_as_main"`
	Users           []UserParams  `json:"users"`
}
