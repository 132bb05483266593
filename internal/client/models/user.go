// Package models holds the records exchanged with the POS back-office API.
package models

import "strings"

// PointOfSale is the warehouse a user is attached to.
type PointOfSale struct {
	WhsCode string `json:"whsCode"`
	WhsName string `json:"whsName"`
}

// User is the record returned by GET User/{id}. It is kept in memory by the
// session and mirrored into local storage as JSON.
type User struct {
	UserID   int64        `json:"userId"`
	IsActive bool         `json:"isActive"`
	IsAdmin  bool         `json:"isAdmin"`
	Enabled  *bool        `json:"enabled,omitempty"`
	Lang     string       `json:"lang"`
	Name     string       `json:"name"`
	Surname  string       `json:"surname"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone"`
	PosCode  string       `json:"posCode"`
	PosName  *PointOfSale `json:"posName,omitempty"`
}

// IsEnabled reports false only when the backend explicitly disabled the user.
func (u *User) IsEnabled() bool {
	return u.Enabled == nil || *u.Enabled
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}
