package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdpro/backend/internal/domain"
)

func TestBroadcaster_DeliversInSubscriptionOrder(t *testing.T) {
	b := NewBroadcaster(nil)
	var got []string

	b.Subscribe(func(e Event) { got = append(got, "badge:"+e.Type) })
	b.Subscribe(func(e Event) { got = append(got, "summary:"+e.Type) })

	b.PublishCartChanged(context.Background(), domain.CartChanged{Session: "s1"})
	b.PublishCurrencyChanged(context.Background(), domain.CurrencyChanged{Session: "s1", Region: "GB"})

	assert.Equal(t, []string{
		"badge:cartchange", "summary:cartchange",
		"badge:currencychange", "summary:currencychange",
	}, got)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := NewBroadcaster(nil)
	calls := 0
	unsubscribe := b.Subscribe(func(Event) { calls++ })

	b.PublishCartChanged(context.Background(), domain.CartChanged{})
	unsubscribe()
	unsubscribe()
	b.PublishCartChanged(context.Background(), domain.CartChanged{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Len())
}

func TestBroadcaster_PanickingListenerDoesNotBlockOthers(t *testing.T) {
	b := NewBroadcaster(nil)
	reached := false
	b.Subscribe(func(Event) { panic("render failed") })
	b.Subscribe(func(Event) { reached = true })

	assert.NotPanics(t, func() {
		b.PublishCartChanged(context.Background(), domain.CartChanged{})
	})
	assert.True(t, reached)
}

func TestBroadcaster_SubscribeSession(t *testing.T) {
	b := NewBroadcaster(nil)
	ch, unsubscribe := b.SubscribeSession("mine", 4)

	b.PublishCartChanged(context.Background(), domain.CartChanged{Session: "other"})
	b.PublishCartChanged(context.Background(), domain.CartChanged{
		Session: "mine",
		Cart:    domain.Cart{domain.NewCartLine("sunscreen", "Sunscreen", 8, 1, "", false)},
	})

	require.Len(t, ch, 1)
	e := <-ch
	assert.Equal(t, TypeCartChange, e.Type)
	payload, ok := e.Payload.(domain.CartChanged)
	require.True(t, ok)
	assert.Equal(t, 1, payload.Cart.Count())

	unsubscribe()
	_, open := <-ch
	assert.False(t, open)

	// Publishing after close must not panic
	assert.NotPanics(t, func() {
		b.PublishCartChanged(context.Background(), domain.CartChanged{Session: "mine"})
	})
}

func TestBroadcaster_SubscribeSessionDropsWhenFull(t *testing.T) {
	b := NewBroadcaster(nil)
	ch, unsubscribe := b.SubscribeSession("s", 1)
	defer unsubscribe()

	for i := 0; i < 3; i++ {
		b.PublishCartChanged(context.Background(), domain.CartChanged{Session: "s"})
	}

	assert.Len(t, ch, 1)
}
