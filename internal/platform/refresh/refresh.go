// Package refresh broadcasts path-scoped invalidation signals so list views
// can reload after a lifecycle transition.
package refresh

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// Notifier is the write side consumed by domain services.
type Notifier interface {
	Invalidate(path string)
}

// Broker fans an invalidation signal out to every subscriber of a path.
// Signals are edge-triggered and not buffered beyond one pending event per
// subscriber; a slow subscriber coalesces repeated invalidations.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan struct{}]struct{})}
}

// Invalidate notifies all current subscribers of path.
func (b *Broker) Invalidate(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[path] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers interest in a path. The returned cancel func must be
// called to release the subscription.
func (b *Broker) Subscribe(path string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	if b.subs[path] == nil {
		b.subs[path] = make(map[chan struct{}]struct{})
	}
	b.subs[path][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs[path], ch)
		if len(b.subs[path]) == 0 {
			delete(b.subs, path)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Handler exposes the broker as a long-poll endpoint for the UI.
type Handler struct {
	broker *Broker
}

func NewHandler(broker *Broker) *Handler {
	return &Handler{broker: broker}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/refresh/wait", h.Wait)
}

// Wait blocks until the given path is invalidated or the request is cancelled.
// 200 means "reload now", 204 means the client went away or timed out.
func (h *Handler) Wait(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter is required")
	}

	ch, cancel := h.broker.Subscribe(path)
	defer cancel()

	select {
	case <-ch:
		return c.JSON(http.StatusOK, map[string]string{"path": path, "event": "invalidated"})
	case <-c.Request().Context().Done():
		if c.Request().Context().Err() == context.Canceled {
			return c.NoContent(http.StatusNoContent)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
