package console

import (
	"errors"

	"MiniStock/internal/auth"
	"MiniStock/internal/inventory"
)

func describe(err error) string {
	switch {
	case errors.Is(err, inventory.ErrDuplicateID):
		return "Product ID already exists!"
	case errors.Is(err, inventory.ErrDuplicateName):
		return "Product name already exists!"
	case errors.Is(err, inventory.ErrNotFound):
		return "Product not found!"
	case errors.Is(err, inventory.ErrInvalidProduct):
		return "No such product in the store!"
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return "Quantity must be positive!"
	case errors.Is(err, inventory.ErrOutOfStock):
		return "Product is out of stock!"
	case errors.Is(err, inventory.ErrInvalidName):
		return "Name must be a single word!"
	case errors.Is(err, inventory.ErrInvalidPrice):
		return "Price cannot be negative!"
	case errors.Is(err, errInvalidInput):
		return "Invalid input! Use spaces only."
	default:
		return "Error: " + err.Error()
	}
}

func describeAuth(err error) string {
	switch {
	case errors.Is(err, auth.ErrUserExists):
		return "Username already taken!"
	case errors.Is(err, auth.ErrInvalidUsername):
		return "Username must be a single word!"
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "Password too short!"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password!"
	default:
		return "Error: " + err.Error()
	}
}
