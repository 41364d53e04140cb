package daemon

import (
	"time"

	"fskanban/internal/application/dto"
)

// Request types
const (
	RequestPing       = "ping"
	RequestStatus     = "status"
	RequestCheck      = "check"
	RequestInvalidate = "invalidate"
	RequestSubscribe  = "subscribe"
)

// Notification types
const (
	// NotificationBoardChanged is sent after files below the data directory changed
	NotificationBoardChanged = "board_changed"
	// NotificationBoardRepaired is sent when a reconcile reassigned duplicate ids
	NotificationBoardRepaired = "board_repaired"
)

// Request represents a client request to the daemon
type Request struct {
	Type string `json:"type"`
}

// Response represents a daemon response to the client
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Notification is pushed to subscribers after a reconcile
type Notification struct {
	Type    string                `json:"type"`
	Paths   []string              `json:"paths,omitempty"`
	Repairs []dto.ReassignmentDTO `json:"repairs,omitempty"`
}

// Status describes a running daemon
type Status struct {
	SocketPath    string    `json:"socket_path" yaml:"socket_path"`
	StartedAt     time.Time `json:"started_at" yaml:"started_at"`
	Reconciles    int       `json:"reconciles" yaml:"reconciles"`
	Repairs       int       `json:"repairs" yaml:"repairs"`
	LastReconcile time.Time `json:"last_reconcile,omitempty" yaml:"last_reconcile,omitempty"`
	LastError     string    `json:"last_error,omitempty" yaml:"last_error,omitempty"`
	Subscribers   int       `json:"subscribers" yaml:"subscribers"`
}
