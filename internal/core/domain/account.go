package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

// Account models a registered marketplace identity. ShopName is set only
// for seller accounts; PasswordDigest is never serialised.
type Account struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"-"`
	Role           string    `json:"role"`
	ShopName       string    `json:"shop_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Summary returns the safe projection of the account handed back to clients.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Role:     a.Role,
	}
}

// AccountSummary is the directory/login projection of an account. It never
// carries the password digest or the shop name.
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Conflict is a partial account row returned by the advisory uniqueness
// pre-check before registration. Only the three unique columns are populated.
type Conflict struct {
	Email    string
	Username string
	ShopName string
}

// Registration carries the candidate fields of a registration request,
// prior to validation and hashing.
type Registration struct {
	Username string
	Email    string
	Password string
	Role     string
	ShopName string
}
