//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"MiniStock/internal/auth"
	"MiniStock/internal/console"
	"MiniStock/internal/dashboard"
	"MiniStock/internal/inventory"
	"MiniStock/internal/storage"
)

type system struct {
	inv   *inventory.Inventory
	store *storage.FileStore
	ts    *httptest.Server
}

func boot(t *testing.T, dataFile string) *system {
	t.Helper()

	reg := prometheus.NewRegistry()
	inv := inventory.New(inventory.WithMetrics(inventory.NewMetrics(reg)))
	store := storage.NewFileStore(dataFile)

	records, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	inv.Restore(records)

	h := dashboard.NewHandler(&dashboard.Server{Inventory: inv}, dashboard.HTTPDeps{
		Log:      zap.NewNop(),
		Service:  "dashboard",
		Registry: reg,
	})
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &system{inv: inv, store: store, ts: ts}
}

func (s *system) run(t *testing.T, lines ...string) string {
	t.Helper()

	users := auth.NewMemStoreWithCost(bcrypt.MinCost)
	if _, err := users.Register("admin", "admin123", auth.RoleAdmin); err != nil {
		t.Fatalf("register admin: %v", err)
	}

	var out bytes.Buffer
	app := console.New(console.Deps{
		Inventory:  s.inv,
		Users:      users,
		Store:      s.store,
		ExportPath: filepath.Join(filepath.Dir(s.store.Path), "inventory.json"),
		Log:        zap.NewNop(),
	}, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)

	if err := app.Run(); err != nil {
		t.Fatalf("run: %v\n%s", err, out.String())
	}
	return out.String()
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s: status=%d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestSystem_ConsoleStorageDashboard(t *testing.T) {
	color.NoColor = true
	dataFile := filepath.Join(t.TempDir(), "inventory.txt")

	first := boot(t, dataFile)
	first.run(t,
		"2", "admin", "admin123",
		"1", "1 Pen 10 5.0",
		"1", "2 Ink 3 20.0",
		"1", "3 Pad 8 2.5",
		"8",
		"1", "eve", "secret1",
		"2", "eve", "secret1",
		"3", "3 8",
		"3", "2 1",
		"5",
		"7",
		"3",
	)

	var live []map[string]any
	getJSON(t, first.ts.URL+"/inventory.json", &live)
	if len(live) != 2 {
		t.Fatalf("live products=%d want 2: %#v", len(live), live)
	}

	second := boot(t, dataFile)
	var products []struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	getJSON(t, second.ts.URL+"/inventory.json", &products)

	if len(products) != 2 || products[0].Name != "Ink" || products[1].Name != "Pen" {
		t.Fatalf("reloaded products: %#v", products)
	}
	if products[0].Quantity != 2 {
		t.Fatalf("ink quantity=%d want 2", products[0].Quantity)
	}

	var low struct {
		Products []struct {
			ID int `json:"id"`
		} `json:"products"`
	}
	getJSON(t, second.ts.URL+"/low-stock", &low)
	if len(low.Products) != 1 || low.Products[0].ID != 2 {
		t.Fatalf("low stock: %#v", low)
	}
}
