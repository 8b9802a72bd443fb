package settlement

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// scope returns the shop filter for list queries; nil means all shops.
func scope(a actor.Actor) (*uint, error) {
	if a.IsAdmin() {
		return nil, nil
	}
	if a.ShopID == nil {
		return nil, httperr.ErrBusiness("not_shop_owner")
	}
	return a.ShopID, nil
}
