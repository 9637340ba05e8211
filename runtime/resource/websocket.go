package resource

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/wfl-lang/wfl/runtime/value"
)

var errAlreadyResponded = errors.New("resource: request already responded to")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Socket is a live WebSocket connection, the handle behind `upgrade to
// websocket`. A supplemental feature beyond spec.md's minimum HTTP
// server contract, filling out the WebSocket resource handle spec.md
// §3 already names in its Values section.
type Socket struct {
	conn *websocket.Conn
}

// Upgrade promotes req's underlying HTTP connection to a WebSocket.
// req must not have been responded to yet, since the upgrade itself
// writes the HTTP response that switches protocols; once it succeeds
// req is marked responded so an ordinary Respond can no longer fire.
func Upgrade(req *Request) (*value.Resource, *Socket, error) {
	req.respondMu.Lock()
	if req.responded {
		req.respondMu.Unlock()
		return nil, nil, errAlreadyResponded
	}
	w, r := req.Raw()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		req.respondMu.Unlock()
		return nil, nil, err
	}
	req.responded = true
	req.respondMu.Unlock()
	req.server.forget(req)
	close(req.done)

	sock := &Socket{conn: conn}
	res := &value.Resource{KindName: "websocket", ID: nextID(), Closer: sock.Close}
	return res, sock, nil
}

// Send writes a single text frame.
func (s *Socket) Send(text string) error {
	return s.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

// Receive blocks for the next text frame.
func (s *Socket) Receive() (string, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close sends a close frame and releases the connection.
func (s *Socket) Close() error {
	_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}
