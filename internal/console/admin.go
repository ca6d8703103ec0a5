package console

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"MiniStock/internal/storage"
)

func (a *App) adminMenu(s *session) error {
	for {
		a.heading.Fprintln(a.out, "\n===== ADMIN MENU =====")
		fmt.Fprint(a.out, "1. Add Product\n2. Delete Product\n3. Restock Product\n4. View Sorted Inventory\n")
		fmt.Fprint(a.out, "5. View Low Stock\n6. Search Product by ID\n7. Save\n8. Logout\n")

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
			err = a.addProduct(s)
		case 2:
			err = a.deleteProduct(s)
		case 3:
			err = a.restock(s)
		case 4:
			a.viewSorted()
		case 5:
			a.viewLowStock()
		case 6:
			err = a.search()
		case 7:
			_ = a.Save()
		case 8:
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

func (a *App) addProduct(s *session) error {
	line, err := a.readLine("Enter ID Name Quantity Price (space separated): ")
	if err != nil {
		return err
	}

	p, err := storage.ParseRecord(line)
	if err != nil {
		a.bad.Fprintln(a.out, describe(errInvalidInput))
		return nil
	}
	if err := a.inv.Add(p); err != nil {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}

	a.log.Info("product added", zap.String("session_id", s.id), zap.Int("id", p.ID))
	a.good.Fprintln(a.out, "Product added successfully!")
	return nil
}

func (a *App) deleteProduct(s *session) error {
	v, err := a.readInts("Enter Product ID to delete: ", 1)
	if errors.Is(err, errInvalidInput) {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.inv.Delete(v[0]); err != nil {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}

	a.log.Info("product deleted", zap.String("session_id", s.id), zap.Int("id", v[0]))
	a.good.Fprintln(a.out, "Product deleted successfully!")
	return nil
}

func (a *App) restock(s *session) error {
	v, err := a.readInts("Enter Product ID and new Quantity: ", 2)
	if errors.Is(err, errInvalidInput) {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.inv.SetQuantity(v[0], v[1]); err != nil {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}

	a.log.Info("product restocked", zap.String("session_id", s.id), zap.Int("id", v[0]), zap.Int("quantity", v[1]))
	a.good.Fprintln(a.out, "Stock updated successfully!")
	return nil
}

func (a *App) viewSorted() {
	products := a.inv.Sorted()
	if len(products) == 0 {
		a.note.Fprintln(a.out, "No products available!")
		return
	}
	a.heading.Fprintln(a.out, "===== Sorted Inventory =====")
	for _, p := range products {
		a.printProduct(p)
	}
}

func (a *App) viewLowStock() {
	products := a.inv.LowStock()
	if len(products) == 0 {
		a.note.Fprintln(a.out, "No low stock products!")
		return
	}
	a.heading.Fprintln(a.out, "===== Low Stock Products =====")
	for _, p := range products {
		fmt.Fprintf(a.out, "ID: %d | Name: %s | Qty: %d\n", p.ID, p.Name, p.Quantity)
	}
}

func (a *App) search() error {
	v, err := a.readInts("Enter Product ID to search: ", 1)
	if errors.Is(err, errInvalidInput) {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}
	if err != nil {
		return err
	}

	p, err := a.inv.Get(v[0])
	if err != nil {
		a.bad.Fprintln(a.out, describe(err))
		return nil
	}
	fmt.Fprint(a.out, "Found Product -> ")
	a.printProduct(p)
	return nil
}
