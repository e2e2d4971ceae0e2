package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Manager keeps track of active device connections and dashboard feed
// subscribers.
type Manager struct {
	mu          sync.RWMutex
	devices     map[string]*websocket.Conn // deviceID -> conn
	subscribers map[*websocket.Conn]struct{}
}

func NewManager() *Manager {
	return &Manager{
		devices:     make(map[string]*websocket.Conn),
		subscribers: make(map[*websocket.Conn]struct{}),
	}
}

// RegisterDevice registers a device connection, replacing any existing one.
func (m *Manager) RegisterDevice(deviceID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.devices[deviceID]; ok && old != conn {
		// close old connection to avoid leaks
		_ = old.Close()
	}
	m.devices[deviceID] = conn
}

// UnregisterDevice removes a device connection.
func (m *Manager) UnregisterDevice(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.devices[deviceID]; ok {
		_ = conn.Close()
		delete(m.devices, deviceID)
	}
}

// Subscribe adds a feed subscriber connection.
func (m *Manager) Subscribe(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[conn] = struct{}{}
}

// Unsubscribe removes a feed subscriber connection.
func (m *Manager) Unsubscribe(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subscribers[conn]; ok {
		_ = conn.Close()
		delete(m.subscribers, conn)
	}
}

// SendToDevice sends a text message to a device if connected.
func (m *Manager) SendToDevice(deviceID string, payload []byte) error {
	m.mu.RLock()
	conn, ok := m.devices[deviceID]
	m.mu.RUnlock()
	if !ok || conn == nil {
		return errors.New("device not connected")
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// Broadcast sends a text message to every feed subscriber. Write failures
// drop the subscriber.
func (m *Manager) Broadcast(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.subscribers {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = conn.Close()
			delete(m.subscribers, conn)
		}
	}
}

// IsConnected returns whether a device is currently connected.
func (m *Manager) IsConnected(deviceID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.devices[deviceID]
	return ok
}

// ListDevices returns a copy of current connected device IDs.
func (m *Manager) ListDevices() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.devices))
	for id := range m.devices {
		ids = append(ids, id)
	}
	return ids
}
