package events

import (
	"sync"

	"dochub/domain/events"
	"dochub/logging"
)

// RefreshEventBus provides type-safe event publishing and subscription for
// listing and selection refresh events
type RefreshEventBus struct {
	mu     sync.RWMutex
	logger *logging.Logger

	// Event handler slices for each event type
	listingRefreshedHandlers   []func(events.ListingRefreshedEvent)
	selectionRefreshedHandlers []func(events.SelectionRefreshedEvent)
	mutationCompletedHandlers  []func(events.MutationCompletedEvent)
	mutationFailedHandlers     []func(events.MutationFailedEvent)
}

// NewRefreshEventBus creates a new typed refresh event bus
func NewRefreshEventBus() *RefreshEventBus {
	return &RefreshEventBus{
		logger:                     logging.Default().WithComponent("refresh_event_bus"),
		listingRefreshedHandlers:   make([]func(events.ListingRefreshedEvent), 0),
		selectionRefreshedHandlers: make([]func(events.SelectionRefreshedEvent), 0),
		mutationCompletedHandlers:  make([]func(events.MutationCompletedEvent), 0),
		mutationFailedHandlers:     make([]func(events.MutationFailedEvent), 0),
	}
}

// Subscribe methods for each event type

func (bus *RefreshEventBus) OnListingRefreshed(handler func(events.ListingRefreshedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.listingRefreshedHandlers = append(bus.listingRefreshedHandlers, handler)
}

func (bus *RefreshEventBus) OnSelectionRefreshed(handler func(events.SelectionRefreshedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.selectionRefreshedHandlers = append(bus.selectionRefreshedHandlers, handler)
}

func (bus *RefreshEventBus) OnMutationCompleted(handler func(events.MutationCompletedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.mutationCompletedHandlers = append(bus.mutationCompletedHandlers, handler)
}

func (bus *RefreshEventBus) OnMutationFailed(handler func(events.MutationFailedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.mutationFailedHandlers = append(bus.mutationFailedHandlers, handler)
}

// Publish methods for each event type

func (bus *RefreshEventBus) PublishListingRefreshed(event events.ListingRefreshedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.ListingRefreshedEvent), len(bus.listingRefreshedHandlers))
	copy(handlers, bus.listingRefreshedHandlers)
	bus.mu.RUnlock()

	// Execute handlers asynchronously to avoid blocking the publisher
	for _, handler := range handlers {
		go func(h func(events.ListingRefreshedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in ListingRefreshed",
						"source", event.Source,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *RefreshEventBus) PublishSelectionRefreshed(event events.SelectionRefreshedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.SelectionRefreshedEvent), len(bus.selectionRefreshedHandlers))
	copy(handlers, bus.selectionRefreshedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.SelectionRefreshedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in SelectionRefreshed",
						"item_id", event.ItemID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *RefreshEventBus) PublishMutationCompleted(event events.MutationCompletedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.MutationCompletedEvent), len(bus.mutationCompletedHandlers))
	copy(handlers, bus.mutationCompletedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.MutationCompletedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in MutationCompleted",
						"operation", event.Operation,
						"item_id", event.ItemID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *RefreshEventBus) PublishMutationFailed(event events.MutationFailedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.MutationFailedEvent), len(bus.mutationFailedHandlers))
	copy(handlers, bus.mutationFailedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.MutationFailedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in MutationFailed",
						"operation", event.Operation,
						"item_id", event.ItemID,
						"error", event.Error,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}
