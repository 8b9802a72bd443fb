// Package actor identifies who is calling a use case, as extracted from the
// bearer token.
package actor

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
	RoleUser  = "user"
)

type Actor struct {
	UserID uint
	Role   string
	// ShopID is set for shop owners.
	ShopID *uint
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ManagesShop reports whether a may act on shopID's data.
func (a Actor) ManagesShop(shopID uint) bool {
	return a.IsAdmin() || (a.ShopID != nil && *a.ShopID == shopID)
}
