package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"MiniStock/internal/auth"
	"MiniStock/internal/inventory"
	"MiniStock/internal/storage"
)

var errInvalidInput = errors.New("invalid input")

type Deps struct {
	Inventory  *inventory.Inventory
	Users      *auth.MemStore
	Store      *storage.FileStore
	ExportPath string
	Log        *zap.Logger
}

// App is the interactive menu. It reads one command per line from in and
// writes prompts and results to out.
type App struct {
	inv        *inventory.Inventory
	users      *auth.MemStore
	store      *storage.FileStore
	exportPath string
	log        *zap.Logger

	in  *bufio.Scanner
	out io.Writer

	heading *color.Color
	good    *color.Color
	bad     *color.Color
	note    *color.Color
}

func New(deps Deps, in io.Reader, out io.Writer) *App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		inv:        deps.Inventory,
		users:      deps.Users,
		store:      deps.Store,
		exportPath: deps.ExportPath,
		log:        log,
		in:         bufio.NewScanner(in),
		out:        out,
		heading:    color.New(color.FgCyan, color.Bold),
		good:       color.New(color.FgGreen),
		bad:        color.New(color.FgRed),
		note:       color.New(color.FgYellow),
	}
}

// Run drives the top-level menu until the user exits or input ends. Either
// way the inventory is saved before returning.
func (a *App) Run() error {
	fmt.Fprintf(a.out, "Total products in inventory: %d\n", a.inv.Len())

	for {
		a.heading.Fprintln(a.out, "\n===== INVENTORY SYSTEM =====")
		fmt.Fprint(a.out, "1. Register\n2. Login\n3. Save & Exit\n")

		choice, err := a.readChoice()
		if errors.Is(err, errInvalidInput) {
			a.bad.Fprintln(a.out, "Invalid choice!")
			continue
		}
		if err != nil {
			return a.exit(err)
		}

		switch choice {
		case 1:
			err = a.register()
		case 2:
			err = a.login()
		case 3:
			return a.exit(nil)
		default:
			a.bad.Fprintln(a.out, "Invalid choice!")
		}
		if err != nil {
			return a.exit(err)
		}
	}
}

// exit saves and ends the program. End of input is a normal exit; any
// other read error is returned alongside a save failure.
func (a *App) exit(cause error) error {
	if errors.Is(cause, io.EOF) {
		cause = nil
	}
	err := a.Save()
	fmt.Fprintln(a.out, "Exiting...")
	return errors.Join(cause, err)
}

func (a *App) register() error {
	username, err := a.readLine("Choose a username: ")
	if err != nil {
		return err
	}
	password, err := a.readLine("Choose a password: ")
	if err != nil {
		return err
	}

	u, err := a.users.Register(username, password, auth.RoleCustomer)
	if err != nil {
		a.bad.Fprintln(a.out, describeAuth(err))
		return nil
	}

	a.log.Info("user registered", zap.String("user_id", u.ID), zap.String("username", u.Username))
	a.good.Fprintln(a.out, "Registered! You can now log in.")
	return nil
}

func (a *App) login() error {
	username, err := a.readLine("Username: ")
	if err != nil {
		return err
	}
	password, err := a.readLine("Password: ")
	if err != nil {
		return err
	}

	u, err := a.users.Verify(username, password)
	if err != nil {
		a.log.Warn("login failed", zap.String("username", username))
		a.bad.Fprintln(a.out, describeAuth(err))
		return nil
	}

	s := newSession(u, a.inv)
	a.log.Info("session started",
		zap.String("session_id", s.id),
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)
	a.good.Fprintf(a.out, "Welcome, %s!\n", u.Username)

	if u.IsAdmin() {
		err = a.adminMenu(s)
	} else {
		err = a.customerMenu(s)
	}

	s.end()
	a.log.Info("session ended", zap.String("session_id", s.id))
	return err
}

// Save writes the flat-text file and, when configured, the JSON export.
func (a *App) Save() error {
	if err := a.store.Save(a.inv.Products()); err != nil {
		a.log.Error("save failed", zap.Error(err), zap.String("path", a.store.Path))
		a.bad.Fprintf(a.out, "Could not save to %s: %v\n", a.store.Path, err)
		return err
	}
	if a.exportPath != "" {
		if err := storage.ExportJSON(a.exportPath, a.inv.Sorted()); err != nil {
			a.log.Warn("json export failed", zap.Error(err), zap.String("path", a.exportPath))
		}
	}
	a.good.Fprintf(a.out, "Data saved to %s\n", a.store.Path)
	return nil
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

func (a *App) readChoice() (int, error) {
	line, err := a.readLine("Enter choice: ")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errInvalidInput
	}
	return n, nil
}

// readInts reads exactly n whitespace-separated integers from one line.
func (a *App) readInts(prompt string, n int) ([]int, error) {
	line, err := a.readLine(prompt)
	if err != nil {
		return nil, err
	}

	f := strings.Fields(line)
	if len(f) != n {
		return nil, errInvalidInput
	}

	out := make([]int, n)
	for i, s := range f {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, errInvalidInput
		}
		out[i] = v
	}
	return out, nil
}

func (a *App) printProduct(p inventory.Product) {
	fmt.Fprintf(a.out, "ID: %d | Name: %s | Qty: %d | Price: %s\n", p.ID, p.Name, p.Quantity, p.Price.String())
}
