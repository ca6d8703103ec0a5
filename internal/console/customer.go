package console

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"MiniStock/internal/cart"
)

func (a *App) customerMenu(s *session) error {
	for {
		a.heading.Fprintln(a.out, "\n===== CUSTOMER MENU =====")
		fmt.Fprint(a.out, "1. View Products\n2. Search Product by ID\n3. Add to Cart\n4. View Cart\n")
		fmt.Fprint(a.out, "5. Checkout\n6. Buy Now\n7. Logout\n")

		choice, err := a.readChoice()
		if errors.Is(err, errInvalidInput) {
			a.bad.Fprintln(a.out, "Invalid choice!")
			continue
		}
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			a.viewSorted()
		case 2:
			err = a.search()
		case 3:
			err = a.addToCart(s)
		case 4:
			a.viewCart(s)
		case 5:
			a.checkout(s)
		case 6:
			err = a.buyNow(s)
		case 7:
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		default:
			a.bad.Fprintln(a.out, "Invalid choice!")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) addToCart(s *session) error {
	v, err := a.readInts("Enter Product ID and Quantity: ", 2)
	if errors.Is(err, errInvalidInput) {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.cart.Add(v[0], v[1]); err != nil {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}
	a.good.Fprintln(a.out, "Added to cart!")
	return nil
}

func (a *App) viewCart(s *session) {
	lines := s.cart.View()
	if len(lines) == 0 {
		a.note.Fprintln(a.out, "Your cart is empty!")
		return
	}

	a.heading.Fprintln(a.out, "===== Your Cart =====")
	for _, l := range lines {
		if l.Removed {
			a.note.Fprintf(a.out, "ID: %d | Qty: %d | (removed from store)\n", l.ProductID, l.Quantity)
			continue
		}
		fmt.Fprintf(a.out, "ID: %d | Name: %s | Qty: %d | Available: %d | Subtotal: %s\n",
			l.ProductID, l.Product.Name, l.Quantity, l.Available, l.Subtotal().String())
	}
}

func (a *App) checkout(s *session) {
	if s.cart.Len() == 0 {
		a.note.Fprintln(a.out, "Your cart is empty!")
		return
	}

	rec := s.cart.Checkout()
	for _, o := range rec.Outcomes {
		switch o.Status {
		case cart.StatusFulfilled:
			a.good.Fprintf(a.out, "Bought %d x %s\n", o.Bought, o.Name)
		case cart.StatusPartial:
			a.note.Fprintf(a.out, "Only %d of %d %s available, bought all %d\n", o.Bought, o.Requested, o.Name, o.Bought)
		case cart.StatusOutOfStock:
			a.bad.Fprintf(a.out, "%s is out of stock, skipped\n", o.Name)
		case cart.StatusRemoved:
			a.bad.Fprintf(a.out, "Product %d was removed from store, skipped\n", o.ProductID)
		}
	}
	fmt.Fprintf(a.out, "Total: %s\n", rec.Total.String())

	a.log.Info("checkout",
		zap.String("session_id", s.id),
		zap.Int("lines", len(rec.Outcomes)),
		zap.String("total", rec.Total.String()),
	)
}

func (a *App) buyNow(s *session) error {
	v, err := a.readInts("Enter Product ID and Quantity: ", 2)
	if errors.Is(err, errInvalidInput) {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}
	if err != nil {
		return err
	}

	pur, err := a.inv.Buy(v[0], v[1])
	if err != nil {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}

	if pur.Removed && pur.Sold < v[1] {
		a.note.Fprintf(a.out, "Only %d %s available, bought all\n", pur.Sold, pur.Product.Name)
	} else {
		a.good.Fprintf(a.out, "Bought %d x %s\n", pur.Sold, pur.Product.Name)
	}
	fmt.Fprintf(a.out, "Total: %s\n", pur.Total().String())

	a.log.Info("buy", zap.String("session_id", s.id), zap.Int("id", v[0]), zap.Int("sold", pur.Sold))
	return nil
}
