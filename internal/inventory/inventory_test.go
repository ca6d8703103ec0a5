package inventory

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int, name string, qty int, price string) Product {
	return Product{ID: id, Name: name, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func ids(ps []Product) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestAdd_RejectsCollisionsWithoutSideEffects(t *testing.T) {
	inv := New()
	require.NoError(t, inv.Add(product(1, "Pen", 10, "5.0")))

	assert.ErrorIs(t, inv.Add(product(1, "Pencil", 2, "1")), ErrDuplicateID)
	assert.ErrorIs(t, inv.Add(product(2, "Pen", 2, "1")), ErrDuplicateName)

	assert.Equal(t, 1, inv.Len())
	assert.Equal(t, []int{1}, ids(inv.Sorted()))
	assert.Empty(t, inv.LowStock())
	assert.Equal(t, 0, inv.LowStockLogLen())
}

func TestAdd_Validation(t *testing.T) {
	inv := New()

	tests := []struct {
		name string
		p    Product
		want error
	}{
		{"empty name", product(1, "", 1, "1"), ErrInvalidName},
		{"name with space", product(1, "Red Pen", 1, "1"), ErrInvalidName},
		{"negative quantity", product(1, "Pen", -1, "1"), ErrInvalidQuantity},
		{"negative price", product(1, "Pen", 1, "-0.01"), ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, inv.Add(tt.p), tt.want)
		})
	}
	assert.Equal(t, 0, inv.Len())
}

func TestAdd_ReusesIDAfterDelete(t *testing.T) {
	inv := New()
	require.NoError(t, inv.Add(product(7, "Glue", 8, "2")))
	require.NoError(t, inv.Delete(7))

	require.NoError(t, inv.Add(product(7, "Tape", 9, "3")))
	got, err := inv.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "Tape", got.Name)

	require.NoError(t, inv.Add(product(8, "Glue", 1, "2")), "name of a deleted product is free again")
}

func TestDelete_NotFound(t *testing.T) {
	inv := New()
	assert.ErrorIs(t, inv.Delete(42), ErrNotFound)
}

func TestGet_ReturnsCopy(t *testing.T) {
	inv := New()
	require.NoError(t, inv.Add(product(1, "Pen", 10, "5")))

	p, err := inv.Get(1)
	require.NoError(t, err)
	p.Quantity = 0

	again, err := inv.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Quantity)
}

func TestSorted_NameOrder(t *testing.T) {
	inv := New()
	for i, name := range []string{"Mouse", "Laptop", "Keyboard", "Zip", "Adapter", "Monitor"} {
		require.NoError(t, inv.Add(product(100+i, name, 10, "1")))
	}

	var names []string
	for _, p := range inv.Sorted() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Adapter", "Keyboard", "Laptop", "Monitor", "Mouse", "Zip"}, names)
}

func TestSorted_MatchesStoreAfterRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inv := New()
	live := map[int]bool{}

	for i := 0; i < 2000; i++ {
		id := rng.Intn(60)
		if rng.Intn(3) == 0 {
			err := inv.Delete(id)
			if live[id] {
				require.NoError(t, err)
				delete(live, id)
			} else {
				require.ErrorIs(t, err, ErrNotFound)
			}
			continue
		}

		name := "p" + strconv.Itoa(rng.Intn(80))
		err := inv.Add(product(id, name, rng.Intn(12), "1"))
		if err == nil {
			live[id] = true
		}
	}

	sorted := inv.Sorted()
	for i := 1; i < len(sorted); i++ {
		require.LessOrEqual(t, sorted[i-1].Name, sorted[i].Name)
	}

	got := ids(sorted)
	sort.Ints(got)
	var want []int
	for id := range live {
		want = append(want, id)
	}
	sort.Ints(want)
	assert.Equal(t, want, got)
	assert.Equal(t, len(want), inv.byName.size)
}

func TestLowStock_Example(t *testing.T) {
	inv := New()
	require.NoError(t, inv.Add(product(1, "Pen", 10, "5.0")))
	require.NoError(t, inv.Add(product(2, "Ink", 3, "20.0")))

	low := inv.LowStock()
	require.Len(t, low, 1)
	assert.Equal(t, 2, low[0].ID)
	assert.Equal(t, "Ink", low[0].Name)
	assert.Equal(t, 3, low[0].Quantity)

	pur, err := inv.Buy(2, 1)
	require.NoError(t, err)
	assert.False(t, pur.Removed)
	assert.Equal(t, 2, pur.Product.Quantity)

	low = inv.LowStock()
	require.Len(t, low, 1)
	assert.Equal(t, 2, low[0].Quantity)
	assert.Equal(t, 2, inv.LowStockLogLen(), "duplicates accumulate in the log")

	pur, err = inv.Buy(2, 2)
	require.NoError(t, err)
	assert.True(t, pur.Removed)
	assert.Equal(t, 2, pur.Sold)

	_, err = inv.Get(2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, inv.LowStock())
}

func TestLowStock_FiltersByCurrentQuantity(t *testing.T) {
	inv := New()
	require.NoError(t, inv.Add(product(1, "Pen", 2, "1")))
	require.NoError(t, inv.Add(product(2, "Ink", 4, "1")))
	require.NoError(t, inv.Add(product(3, "Cap", 0, "1")))

	require.NoError(t, inv.SetQuantity(1, 50))
	assert.Equal(t, []int{2}, ids(inv.LowStock()), "restocked and zero-quantity products are not low")

	require.NoError(t, inv.SetQuantity(1, 1))
	assert.Equal(t, []int{1, 2}, ids(inv.LowStock()), "most recent first, no duplicates")
}

func TestLowStock_CustomThreshold(t *testing.T) {
	inv := New(WithThreshold(20))
	require.NoError(t, inv.Add(product(1, "Pen", 10, "1")))
	assert.Equal(t, []int{1}, ids(inv.LowStock()))
	assert.Equal(t, 20, inv.Threshold())
}

func TestSetQuantity(t *testing.T) {
	inv := New()
	require.NoError(t, inv.Add(product(1, "Pen", 10, "1")))

	assert.ErrorIs(t, inv.SetQuantity(9, 3), ErrNotFound)
	assert.ErrorIs(t, inv.SetQuantity(1, -3), ErrInvalidQuantity)

	require.NoError(t, inv.SetQuantity(1, 0))
	p, err := inv.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, 0, inv.LowStockLogLen())
}

func TestBuy(t *testing.T) {
	t.Run("partial leaves product live", func(t *testing.T) {
		inv := New()
		require.NoError(t, inv.Add(product(1, "Pen", 10, "5")))

		pur, err := inv.Buy(1, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, pur.Sold)
		assert.True(t, pur.Total().Equal(decimal.NewFromInt(20)))

		p, err := inv.Get(1)
		require.NoError(t, err)
		assert.Equal(t, 6, p.Quantity)
	})

	t.Run("amount clamps to one", func(t *testing.T) {
		inv := New()
		require.NoError(t, inv.Add(product(1, "Pen", 10, "5")))

		pur, err := inv.Buy(1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, pur.Sold)
		assert.Equal(t, 9, pur.Product.Quantity)
	})

	t.Run("over-buy sells remaining and removes", func(t *testing.T) {
		inv := New()
		require.NoError(t, inv.Add(product(1, "Pen", 10, "5")))

		pur, err := inv.Buy(1, 25)
		require.NoError(t, err)
		assert.True(t, pur.Removed)
		assert.Equal(t, 10, pur.Sold)
		assert.False(t, inv.Exists(1))
		assert.Empty(t, inv.Sorted())
	})

	t.Run("zero stock", func(t *testing.T) {
		inv := New()
		require.NoError(t, inv.Add(product(1, "Pen", 0, "5")))

		_, err := inv.Buy(1, 1)
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.True(t, inv.Exists(1))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := New().Buy(1, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRestore_SkipsCollisions(t *testing.T) {
	inv := New()
	rep := inv.Restore([]Product{
		product(1, "Pen", 10, "5"),
		product(1, "Ink", 3, "20"),
		product(2, "Pen", 3, "20"),
		product(3, "Ink", 3, "20"),
	})

	assert.Equal(t, 2, rep.Added)
	require.Len(t, rep.Skipped, 2)
	assert.ErrorIs(t, rep.Skipped[0].Err, ErrDuplicateID)
	assert.ErrorIs(t, rep.Skipped[1].Err, ErrDuplicateName)
	assert.ElementsMatch(t, []int{1, 3}, ids(inv.Products()))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	inv := New(WithMetrics(m))

	require.NoError(t, inv.Add(product(1, "Pen", 10, "5")))
	require.NoError(t, inv.Add(product(2, "Ink", 3, "20")))
	_, err := inv.Buy(1, 10)
	require.NoError(t, err)
	_, err = inv.Buy(1, 1)
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Products))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.UnitsSold))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LowStockEvents))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Ops.WithLabelValues("add", resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ops.WithLabelValues("buy", ErrNotFound.Error())))
}
