package models

import validation "github.com/go-ozzo/ozzo-validation"

// Credentials is the body of POST Auth.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}
