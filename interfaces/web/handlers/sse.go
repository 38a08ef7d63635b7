package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	domainevents "dochub/domain/events"
	"dochub/logging"
	"dochub/platform/events"
	"dochub/platform/metrics"
)

// SSEClient represents a connected Server-Sent Events client.
type SSEClient struct {
	id       string
	writer   http.ResponseWriter
	flusher  http.Flusher
	done     chan struct{}
	lastSent time.Time
}

// SSEManager manages Server-Sent Events connections and broadcasts listing,
// selection, and mutation refresh events to connected renderers.
type SSEManager struct {
	clients map[string]*SSEClient
	mu      sync.RWMutex
	logger  *logging.Logger
	metrics *metrics.GatewayMetrics
}

// NewSSEManager creates a new SSE connection manager with cleanup routines.
func NewSSEManager(gatewayMetrics *metrics.GatewayMetrics) *SSEManager {
	manager := &SSEManager{
		clients: make(map[string]*SSEClient),
		logger:  logging.Default().WithComponent("sse_manager"),
		metrics: gatewayMetrics,
	}

	// Start cleanup routine for stale connections
	go manager.cleanupRoutine()

	return manager
}

// SubscribeToBus wires the refresh event bus into SSE broadcasts.
func (s *SSEManager) SubscribeToBus(bus *events.RefreshEventBus) {
	bus.OnListingRefreshed(func(event domainevents.ListingRefreshedEvent) {
		s.broadcastJSON("listing-refreshed", event)
	})
	bus.OnSelectionRefreshed(func(event domainevents.SelectionRefreshedEvent) {
		s.broadcastJSON("selection-refreshed", event)
	})
	bus.OnMutationCompleted(func(event domainevents.MutationCompletedEvent) {
		s.broadcastJSON("mutation-completed", event)
	})
	bus.OnMutationFailed(func(event domainevents.MutationFailedEvent) {
		s.broadcastJSON("mutation-failed", event)
	})
}

// AddClient adds a new SSE client connection
func (s *SSEManager) AddClient(clientID string, w http.ResponseWriter) *SSEClient {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("Response writer does not support flushing")
		return nil
	}

	// Immediate flush to establish connection
	flusher.Flush()

	client := &SSEClient{
		id:       clientID,
		writer:   w,
		flusher:  flusher,
		done:     make(chan struct{}),
		lastSent: time.Now(),
	}

	s.mu.Lock()
	s.clients[clientID] = client
	total := len(s.clients)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SSEClients.Set(float64(total))
	}
	s.logger.Info("SSE client connected", "client_id", clientID, "total_clients", total)

	s.sendToClient(client, "connected", fmt.Sprintf("Connected client %s", clientID))

	return client
}

// RemoveClient removes an SSE client connection
func (s *SSEManager) RemoveClient(clientID string) {
	s.mu.Lock()
	client, exists := s.clients[clientID]
	if exists {
		delete(s.clients, clientID)
	}
	total := len(s.clients)
	s.mu.Unlock()

	if exists {
		// Close channel outside of lock to prevent double-close panic
		select {
		case <-client.done:
			// Already closed
		default:
			close(client.done)
		}
		if s.metrics != nil {
			s.metrics.SSEClients.Set(float64(total))
		}
		s.logger.Info("SSE client disconnected", "client_id", clientID)
	}
}

// broadcastJSON sends a JSON-encoded event to all connected clients.
func (s *SSEManager) broadcastJSON(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to encode SSE payload", "event", event, "error", err)
		return
	}

	// Copy clients list to avoid holding lock during I/O
	s.mu.RLock()
	if len(s.clients) == 0 {
		s.mu.RUnlock()
		return
	}
	clientList := make(map[string]*SSEClient, len(s.clients))
	for id, client := range s.clients {
		clientList[id] = client
	}
	s.mu.RUnlock()

	failedClients := []string{}
	for clientID, client := range clientList {
		if err := s.sendToClient(client, event, string(data)); err != nil {
			s.logger.Warn("Failed to send event to client",
				"client_id", clientID,
				"event", event,
				"error", err)
			failedClients = append(failedClients, clientID)
		}
	}

	// Remove failed clients after broadcasting
	for _, clientID := range failedClients {
		s.RemoveClient(clientID)
	}
}

// sendToClient sends an SSE message to a specific client
func (s *SSEManager) sendToClient(client *SSEClient, event, data string) error {
	select {
	case <-client.done:
		return fmt.Errorf("client connection closed")
	default:
	}

	var message string
	if event == "keepalive" || event == "connected" {
		// Special events - send as comments so renderers ignore them
		message = fmt.Sprintf(": %s\n\n", data)
	} else {
		message = fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)
	}

	_, err := client.writer.Write([]byte(message))
	if err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	client.flusher.Flush()
	client.lastSent = time.Now()

	return nil
}

// SendKeepAlive sends keep-alive messages to all clients
func (s *SSEManager) SendKeepAlive() {
	s.mu.RLock()
	clientList := make(map[string]*SSEClient, len(s.clients))
	for id, client := range s.clients {
		clientList[id] = client
	}
	s.mu.RUnlock()

	failedClients := []string{}
	for clientID, client := range clientList {
		if err := s.sendToClient(client, "keepalive", `{"timestamp": "`+time.Now().Format(time.RFC3339)+`"}`); err != nil {
			s.logger.Debug("Keep-alive failed, removing client", "client_id", clientID)
			failedClients = append(failedClients, clientID)
		}
	}

	for _, clientID := range failedClients {
		s.RemoveClient(clientID)
	}
}

// CloseAll disconnects every client. Used during shutdown.
func (s *SSEManager) CloseAll() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		s.RemoveClient(id)
	}
}

// cleanupRoutine periodically cleans up stale connections
func (s *SSEManager) cleanupRoutine() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.SendKeepAlive()

		s.mu.Lock()
		staleThreshold := time.Now().Add(-2 * time.Minute)
		staleClients := []string{}
		for clientID, client := range s.clients {
			if client.lastSent.Before(staleThreshold) {
				s.logger.Info("Removing stale SSE client", "client_id", clientID)
				staleClients = append(staleClients, clientID)
			}
		}
		s.mu.Unlock()

		// Remove stale clients outside of lock
		for _, clientID := range staleClients {
			s.RemoveClient(clientID)
		}
	}
}

// HandleSSEConnection handles the SSE endpoint
func (s *SSEManager) HandleSSEConnection(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	client := s.AddClient(clientID, w)
	if client == nil {
		http.Error(w, "Failed to establish SSE connection", http.StatusInternalServerError)
		return
	}

	// Keep connection alive until client disconnects
	ctx := r.Context()
	select {
	case <-ctx.Done():
		s.logger.Info("SSE client context cancelled", "client_id", clientID)
		s.RemoveClient(clientID)
	case <-client.done:
		s.logger.Info("SSE client connection closed", "client_id", clientID)
		s.RemoveClient(clientID)
	}
}
