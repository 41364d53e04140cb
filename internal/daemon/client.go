package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"fskanban/internal/application/dto"
)

const dialTimeout = 2 * time.Second

// Client represents a daemon client
type Client struct {
	socketPath string
}

// NewClient creates a new daemon client
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	return conn, nil
}

// sendRequest sends a request to the daemon and returns the response
func (c *Client) sendRequest(ctx context.Context, req *Request) (*Response, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// Ping checks if the daemon is running and responding
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.sendRequest(ctx, &Request{Type: RequestPing})
	return err
}

// Status fetches the daemon status
func (c *Client) Status(ctx context.Context) (*Status, error) {
	resp, err := c.sendRequest(ctx, &Request{Type: RequestStatus})
	if err != nil {
		return nil, err
	}

	var status Status
	if err := decodeData(resp.Data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Check asks the daemon to reconcile now and returns the repairs it made
func (c *Client) Check(ctx context.Context) ([]dto.ReassignmentDTO, error) {
	resp, err := c.sendRequest(ctx, &Request{Type: RequestCheck})
	if err != nil {
		return nil, err
	}

	repairs := []dto.ReassignmentDTO{}
	if err := decodeData(resp.Data, &repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

// Invalidate drops the daemon's cached board
func (c *Client) Invalidate(ctx context.Context) error {
	_, err := c.sendRequest(ctx, &Request{Type: RequestInvalidate})
	return err
}

// Subscribe streams notifications until ctx is done or the daemon goes
// away. The returned channel is closed at that point.
func (c *Client) Subscribe(ctx context.Context) (<-chan *Notification, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(conn)
	if err := json.NewEncoder(conn).Encode(&Request{Type: RequestSubscribe}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := decoder.Decode(&resp); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !resp.Success {
		conn.Close()
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	notifications := make(chan *Notification)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(notifications)
		defer conn.Close()
		for {
			var n Notification
			if err := decoder.Decode(&n); err != nil {
				return
			}
			select {
			case notifications <- &n:
			case <-ctx.Done():
				return
			}
		}
	}()

	return notifications, nil
}

// decodeData converts a generic response payload into target
func decodeData(data any, target any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal response data: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}
