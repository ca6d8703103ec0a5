package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"MiniStock/internal/inventory"
)

var ErrMalformed = errors.New("malformed record")

const fieldsPerRecord = 4

// FileStore persists products as plain text, one "id name quantity price"
// record per line.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads every record up to the first malformed line. A missing file
// is an empty inventory.
func (s *FileStore) Load() ([]inventory.Product, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) ([]inventory.Product, error) {
	var out []inventory.Product

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		p, err := ParseRecord(text)
		if err != nil {
			return out, fmt.Errorf("line %d: %w: %v", line, ErrMalformed, err)
		}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// ParseRecord parses one "id name quantity price" record.
func ParseRecord(text string) (inventory.Product, error) {
	f := strings.Fields(text)
	if len(f) != fieldsPerRecord {
		return inventory.Product{}, fmt.Errorf("want %d fields, got %d", fieldsPerRecord, len(f))
	}

	id, err := strconv.Atoi(f[0])
	if err != nil {
		return inventory.Product{}, fmt.Errorf("id: %w", err)
	}
	qty, err := strconv.Atoi(f[2])
	if err != nil {
		return inventory.Product{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := decimal.NewFromString(f[3])
	if err != nil {
		return inventory.Product{}, fmt.Errorf("price: %w", err)
	}

	return inventory.Product{ID: id, Name: f[1], Quantity: qty, Price: price}, nil
}

func Encode(w io.Writer, products []inventory.Product) error {
	bw := bufio.NewWriter(w)
	for _, p := range products {
		if _, err := fmt.Fprintf(bw, "%d %s %d %s\n", p.ID, p.Name, p.Quantity, p.Price.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (s *FileStore) Save(products []inventory.Product) error {
	return writeAtomic(s.Path, func(w io.Writer) error {
		return Encode(w, products)
	})
}

// ExportJSON writes the products as a JSON array for the polling dashboard.
func ExportJSON(path string, products []inventory.Product) error {
	if products == nil {
		products = []inventory.Product{}
	}
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
