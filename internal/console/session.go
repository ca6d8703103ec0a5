package console

import (
	"github.com/google/uuid"

	"MiniStock/internal/auth"
	"MiniStock/internal/cart"
	"MiniStock/internal/inventory"
)

type session struct {
	id   string
	user auth.User
	cart *cart.Cart
}

func newSession(u auth.User, inv *inventory.Inventory) *session {
	return &session{
		id:   uuid.NewString(),
		user: u,
		cart: cart.New(inv),
	}
}

// end drops anything left in the cart; carts never outlive a login.
func (s *session) end() {
	s.cart.Clear()
}
