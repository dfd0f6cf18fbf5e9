package usecase

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdpro/backend/internal/catalog"
	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/infrastructure/metrics"
)

const session = "s1"

func newTestCartStore() (*CartStore, *MockKVStore, *MockPublisher) {
	store := NewMockKVStore()
	pub := &MockPublisher{}
	return NewCartStore(store, catalog.Default(), pub, nil, nil), store, pub
}

func TestAddLine_SameIDSumsQuantities(t *testing.T) {
	qtys := []int{1, 3, 2, 5}
	cart := domain.Cart{}
	for _, q := range qtys {
		cart = AddLine(cart, domain.NewCartLine(catalog.FlagsPack, "Boundary Flags (Pack)", 14, q, "", false))
	}

	require.Len(t, cart, 1)
	assert.Equal(t, 11, cart[0].Qty)
}

func TestAddLine_BackfillsOnlyMissingImage(t *testing.T) {
	cart := domain.Cart{domain.NewCartLine("a", "A", 1, 1, "", false), domain.NewCartLine("b", "B", 1, 1, "b.png", false)}

	cart = AddLine(cart, domain.NewCartLine("a", "A", 1, 1, "new-a.png", false))
	cart = AddLine(cart, domain.NewCartLine("b", "B", 1, 1, "new-b.png", false))

	assert.Equal(t, "new-a.png", cart[0].ImageURL)
	assert.Equal(t, "b.png", cart[1].ImageURL)
}

func TestAddLine_KeepsSnapshotNameAndPrice(t *testing.T) {
	cart := domain.Cart{domain.NewCartLine("a", "Old Name", 5, 1, "", false)}
	cart = AddLine(cart, domain.NewCartLine("a", "New Name", 9, 2, "", false))

	assert.Equal(t, "Old Name", cart[0].Name)
	assert.Equal(t, 5.0, cart[0].Price)
	assert.Equal(t, 3, cart[0].Qty)
}

func TestAddLine_IgnoresUnusableCandidate(t *testing.T) {
	cart := domain.Cart{domain.NewCartLine("a", "A", 1, 1, "", false)}

	assert.Len(t, AddLine(cart, domain.NewCartLine("", "nameless", 1, 1, "", false)), 1)
	out := AddLine(cart, domain.NewCartLine("a", "A", 1, 0, "", false))
	assert.Equal(t, 1, out[0].Qty)
}

func TestAddLine_DoesNotMutateInput(t *testing.T) {
	cart := domain.Cart{domain.NewCartLine("a", "A", 1, 1, "", false)}
	_ = AddLine(cart, domain.NewCartLine("a", "A", 1, 4, "", false))
	assert.Equal(t, 1, cart[0].Qty)
}

func TestNormalize_Idempotent(t *testing.T) {
	cart := domain.DecodeCart([]byte(`[
		{"id":"a","qty":2,"engraving":"ACE"},
		{"id":"b","qty":"3","customizable":"yes","customImages":["x.png",7]},
		"junk",
		{"id":"c"}
	]`))

	once := cart.Normalize()
	assert.Equal(t, once, once.Normalize())
	assert.Len(t, once, 3)
}

func TestCartStore_LoadFailsSoft(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"corrupt json", `[{"id":`},
		{"object instead of array", `{"id":"a"}`},
		{"string", `"cart"`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, store, _ := newTestCartStore()
			require.NoError(t, store.Set(context.Background(), CartKey(session), []byte(tt.payload)))

			cart := cs.Load(context.Background(), session)
			assert.NotNil(t, cart)
			assert.Empty(t, cart)
		})
	}

	t.Run("store error", func(t *testing.T) {
		cs, store, _ := newTestCartStore()
		store.getError = errStoreDown
		assert.Empty(t, cs.Load(context.Background(), session))
	})
}

func TestCartStore_Add(t *testing.T) {
	cs, store, pub := newTestCartStore()
	ctx := context.Background()

	cart, err := cs.Add(ctx, session, domain.CartLine{Name: "Tournament Banner", Price: 40, Qty: -3})
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, "tournament-banner", cart[0].ID)
	assert.Equal(t, 1, cart[0].Qty)
	assert.Equal(t, []string{}, cart[0].CustomImages)

	require.Len(t, pub.carts, 1)
	assert.Equal(t, session, pub.carts[0].Session)
	assert.Equal(t, cart, pub.carts[0].Cart)
	assert.Contains(t, store.raw(CartKey(session)), `"tournament-banner"`)
}

func TestCartStore_AddProductByID(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the line from the catalog", func(t *testing.T) {
		cs, _, pub := newTestCartStore()

		cart, err := cs.AddProductByID(ctx, session, catalog.DriverCustom, 2)
		require.NoError(t, err)
		require.Len(t, cart, 1)
		assert.Equal(t, "Custom Driver Disc", cart[0].Name)
		assert.Equal(t, 19.0, cart[0].Price)
		assert.True(t, cart[0].Customizable)
		assert.Equal(t, "assets/images/disc-driver-custom.png", cart[0].ImageURL)
		assert.Len(t, pub.carts, 1)
	})

	t.Run("unknown product", func(t *testing.T) {
		cs, store, pub := newTestCartStore()
		_, err := cs.AddProductByID(ctx, session, "disc-unicorn", 1)
		assert.ErrorIs(t, err, domain.ErrUnknownProduct)
		assert.Empty(t, pub.carts)
		assert.Zero(t, store.sets)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		cs, _, _ := newTestCartStore()
		_, err := cs.AddProductByID(ctx, session, catalog.DriverCustom, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})
}

func TestCartStore_PreservesUnknownFields(t *testing.T) {
	cs, store, _ := newTestCartStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, CartKey(session), []byte(`[{"id":"orphan","name":"Old Thing","price":2,"qty":1,"engraving":{"text":"ACE"}}]`)))

	_, err := cs.AddProductByID(ctx, session, catalog.Sunscreen, 1)
	require.NoError(t, err)

	raw := store.raw(CartKey(session))
	assert.Contains(t, raw, `"engraving":{"text":"ACE"}`)
	assert.Contains(t, raw, `"orphan"`)
}

func TestCartStore_SnapshotDropsInactiveLines(t *testing.T) {
	cs, store, _ := newTestCartStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, CartKey(session), []byte(`[{"id":"a","qty":0},{"id":"b","qty":2},{"id":"c","qty":-1}]`)))

	snap := cs.Snapshot(ctx, session)
	require.Len(t, snap, 1)
	assert.Equal(t, "b", snap[0].ID)
}

func TestCartStore_Clear(t *testing.T) {
	cs, store, pub := newTestCartStore()
	ctx := context.Background()
	_, err := cs.AddProductByID(ctx, session, catalog.FlagsPack, 1)
	require.NoError(t, err)

	cart, err := cs.Clear(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, cart)
	assert.Equal(t, "[]", store.raw(CartKey(session)))
	require.Len(t, pub.carts, 2)
	assert.Empty(t, pub.carts[1].Cart)
}

func TestCartStore_SaveFailure(t *testing.T) {
	cs, store, pub := newTestCartStore()
	store.setError = errStoreDown

	_, err := cs.AddProductByID(context.Background(), session, catalog.FlagsPack, 1)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, pub.carts)
}

func TestCartStore_SessionsAreIsolated(t *testing.T) {
	cs, _, _ := newTestCartStore()
	ctx := context.Background()
	_, err := cs.AddProductByID(ctx, "alice", catalog.FlagsPack, 1)
	require.NoError(t, err)

	assert.Empty(t, cs.Load(ctx, "bob"))
	assert.Equal(t, 1, cs.Load(ctx, "alice").Count())
}

func TestCartStore_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	cs := NewCartStore(NewMockKVStore(), nil, nil, m, nil)

	_, err := cs.AddProductByID(context.Background(), session, catalog.FlagsPack, 3)
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.CartItemsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartMutations.WithLabelValues("add_product")))
}

func TestAddLine_SaturatesQuantity(t *testing.T) {
	cart := domain.Cart{line(catalog.FlagsPack, math.MaxInt-1)}

	out := AddLine(cart, line(catalog.FlagsPack, 5))
	assert.Equal(t, math.MaxInt, out[0].Qty)
}

func TestPrepareLine(t *testing.T) {
	got := PrepareLine(domain.CartLine{Name: "  Sunscreen ", Price: -2, Qty: 0})
	assert.Equal(t, "sunscreen", got.ID)
	assert.Equal(t, 1, got.Qty)
	assert.Equal(t, 0.0, got.Price)

	got = PrepareLine(domain.CartLine{ID: catalog.BugSpray, Qty: 4})
	assert.Equal(t, catalog.BugSpray, got.ID)
	assert.Equal(t, "Item", got.Name)
	assert.Equal(t, 4, got.Qty)
}

func TestCartStore_ConcurrentAddsOnOneSession(t *testing.T) {
	store := NewMockKVStore()
	store.getDelay = time.Millisecond
	cs := NewCartStore(store, catalog.Default(), nil, nil, nil)
	ctx := context.Background()

	const adds = 50
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cs.AddProductByID(ctx, session, catalog.FlagsPack, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, adds, cs.Load(ctx, session).QtyOf(catalog.FlagsPack))
	assert.Zero(t, cs.locks.held(), "idle sessions release their lock")
}

func TestCartStore_SessionLocksAreIndependent(t *testing.T) {
	cs, _, _ := newTestCartStore()
	ctx := context.Background()

	unlock := cs.locks.lock("other")
	defer unlock()

	done := make(chan struct{})
	go func() {
		_, _ = cs.AddProductByID(ctx, session, catalog.Sunscreen, 1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("add blocked on another session's lock")
	}
	assert.Equal(t, 1, cs.Load(ctx, session).QtyOf(catalog.Sunscreen))
}
