package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"fskanban/internal/application/dto"
	"fskanban/internal/domain/repository"
	"fskanban/internal/infrastructure/config"
	"fskanban/internal/infrastructure/watcher"
)

const socketName = "fskanband.sock"

// ChangeSource reports batches of changed paths
type ChangeSource interface {
	Start() error
	Stop() error
	Changes() <-chan watcher.Change
	Errors() <-chan error
}

// Server keeps the board consistent while other programs edit it. Each
// batch of changes triggers a reconcile: a fresh load that repairs
// duplicate ids, followed by notifications to subscribers.
type Server struct {
	boardRepo  repository.BoardRepository
	source     ChangeSource
	logger     *logrus.Logger
	socketPath string
	listener   net.Listener

	mu      sync.Mutex // serializes reconciles
	stateMu sync.Mutex
	status  Status
	closing bool

	subscribers map[net.Conn]chan *Notification
	subMu       sync.RWMutex

	wg sync.WaitGroup
}

// NewServer creates a daemon server. source may be nil, in which case the
// board is only reconciled on request.
func NewServer(boardRepo repository.BoardRepository, source ChangeSource, logger *logrus.Logger, socketPath string) *Server {
	return &Server{
		boardRepo:   boardRepo,
		source:      source,
		logger:      logger,
		socketPath:  socketPath,
		status:      Status{SocketPath: socketPath},
		subscribers: make(map[net.Conn]chan *Notification),
	}
}

// Start reconciles once, starts watching and serves the socket until Stop
// is called
func (s *Server) Start(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	// Remove existing socket if it exists
	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	if _, err := s.Reconcile(ctx, nil); err != nil {
		s.logger.WithError(err).Error("initial reconcile failed")
	}

	if s.source != nil {
		if err := s.source.Start(); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		s.wg.Add(1)
		go s.watch(ctx)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}

	s.stateMu.Lock()
	if s.closing {
		s.stateMu.Unlock()
		return listener.Close()
	}
	s.listener = listener
	s.status.StartedAt = time.Now()
	s.stateMu.Unlock()

	s.logger.WithField("socket", s.socketPath).Info("daemon listening")

	return s.acceptConnections(ctx)
}

// acceptConnections handles incoming connections
func (s *Server) acceptConnections(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isClosing() {
				return nil
			}
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		go s.handleConnection(ctx, conn)
	}
}

// watch reconciles after each batch of changes
func (s *Server) watch(ctx context.Context) {
	defer s.wg.Done()

	changes := s.source.Changes()
	errs := s.source.Errors()
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if _, err := s.Reconcile(ctx, change.Paths); err != nil {
				s.logger.WithError(err).Error("reconcile failed")
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.logger.WithError(err).Warn("watcher error")
		}
	}
}

// Reconcile reloads the board from disk, repairing duplicate ids, and
// notifies subscribers. paths lists what changed, if known.
func (s *Server) Reconcile(ctx context.Context, paths []string) ([]dto.ReassignmentDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boardRepo.Invalidate()
	_, report, err := s.boardRepo.CheckKanbanState(ctx)

	s.stateMu.Lock()
	s.status.Reconciles++
	s.status.LastReconcile = time.Now()
	s.status.LastError = ""
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.Repairs += len(report)
	s.stateMu.Unlock()

	if err != nil {
		return nil, err
	}

	repairs := dto.ReassignmentsToDTO(report)
	if len(repairs) > 0 {
		s.logger.WithField("count", len(repairs)).Warn("repaired duplicate ids")
		s.notifySubscribers(&Notification{Type: NotificationBoardRepaired, Repairs: repairs})
	}
	if len(paths) > 0 {
		s.logger.WithField("paths", len(paths)).Debug("board changed")
		s.notifySubscribers(&Notification{Type: NotificationBoardChanged, Paths: paths})
	}

	return repairs, nil
}

// Status returns a snapshot of the daemon state
func (s *Server) Status() Status {
	s.stateMu.Lock()
	status := s.status
	s.stateMu.Unlock()

	s.subMu.RLock()
	status.Subscribers = len(s.subscribers)
	s.subMu.RUnlock()
	return status
}

// handleConnection handles a single client connection
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer func() {
		s.cleanupSubscriber(conn)
		conn.Close()
	}()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	// Handle requests in a loop for persistent connections
	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			return
		}

		// Subscribe keeps the connection open for notifications
		if req.Type == RequestSubscribe {
			s.handleSubscribe(conn, encoder)
			return
		}

		resp := s.handleRequest(ctx, &req)
		if err := encoder.Encode(resp); err != nil {
			s.logger.WithError(err).Debug("failed to encode response")
			return
		}

		if req.Type != RequestPing {
			return
		}
	}
}

// handleRequest processes a request and returns a response
func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	switch req.Type {
	case RequestPing:
		return &Response{Success: true, Data: "pong"}
	case RequestStatus:
		return &Response{Success: true, Data: s.Status()}
	case RequestCheck:
		repairs, err := s.Reconcile(ctx, nil)
		if err != nil {
			return &Response{Success: false, Error: err.Error()}
		}
		return &Response{Success: true, Data: repairs}
	case RequestInvalidate:
		s.boardRepo.Invalidate()
		return &Response{Success: true}
	default:
		return &Response{
			Success: false,
			Error:   fmt.Sprintf("unknown request type: %s", req.Type),
		}
	}
}

// Stop closes the socket, stops watching and disconnects subscribers
func (s *Server) Stop() error {
	s.stateMu.Lock()
	if s.closing {
		s.stateMu.Unlock()
		return nil
	}
	s.closing = true
	listener := s.listener
	s.stateMu.Unlock()

	var errs []error
	if listener != nil {
		if err := listener.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.source != nil {
		if err := s.source.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	s.wg.Wait()

	s.subMu.Lock()
	for conn, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, conn)
	}
	s.subMu.Unlock()

	return errors.Join(errs...)
}

func (s *Server) isClosing() bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.closing
}

// GetSocketPath returns the socket path for a configuration
func GetSocketPath(cfg *config.Config) string {
	return filepath.Join(cfg.Storage.DataPath, socketName)
}

// handleSubscribe streams notifications until the connection fails or the
// server stops
func (s *Server) handleSubscribe(conn net.Conn, encoder *json.Encoder) {
	notifChan := make(chan *Notification, 10)

	s.subMu.Lock()
	s.subscribers[conn] = notifChan
	s.subMu.Unlock()

	resp := &Response{Success: true, Data: "subscribed"}
	if err := encoder.Encode(resp); err != nil {
		return
	}

	for notification := range notifChan {
		if err := encoder.Encode(notification); err != nil {
			return
		}
	}
}

// notifySubscribers sends a notification to every subscriber
func (s *Server) notifySubscribers(notification *Notification) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- notification:
		default:
			// Channel full, skip this subscriber
		}
	}
}

// cleanupSubscriber removes a connection from the subscriptions
func (s *Server) cleanupSubscriber(conn net.Conn) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, exists := s.subscribers[conn]; exists {
		close(ch)
		delete(s.subscribers, conn)
	}
}
