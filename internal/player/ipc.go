package player

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"time"
)

// mpv IPC: newline-delimited JSON over a unix socket. Everything here is
// best-effort; a dead or absent socket just means no metadata.

type ipcRequest struct {
	Command []string `json:"command"`
}

type ipcResponse struct {
	Data  map[string]any `json:"data"`
	Error string         `json:"error"`
}

// Metadata queries the playing stream's metadata over the mpv IPC socket
// and returns the icy title, if any. Returns "" for non-mpv players, sockets
// that are not up yet, and streams without metadata.
func (s *Session) Metadata(ctx context.Context) string {
	state, _ := s.Status()
	if s.socket == "" || state != Playing {
		return ""
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", s.socket)
	if err != nil {
		return ""
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	if t, ok := ctx.Deadline(); ok && t.Before(deadline) {
		deadline = t
	}
	conn.SetDeadline(deadline)

	req, err := json.Marshal(ipcRequest{Command: []string{"get_property", "metadata"}})
	if err != nil {
		return ""
	}
	if _, err := conn.Write(append(req, '\n')); err != nil {
		return ""
	}

	// mpv may interleave event messages; scan until the property response.
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var resp ipcResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			continue
		}
		if resp.Error == "" && resp.Data == nil {
			continue // event message
		}
		if resp.Error != "success" {
			return ""
		}
		for _, key := range []string{"icy-title", "icy-name"} {
			if v, ok := resp.Data[key].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}
	return ""
}
