package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the incoming WebSocket message format.
type wsMessage struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// wsResponse is the outgoing WebSocket message format. Answer frames carry
// the same answer, sources and citations fields as the REST endpoint.
type wsResponse struct {
	Type      string   `json:"type"` // "answer" or "error"
	Answer    string   `json:"answer,omitempty"`
	Sources   []string `json:"sources,omitempty"`
	Citations []string `json:"citations,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// handleChatWS answers questions over a WebSocket connection, one exchange
// per incoming message.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SERVER] websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[SERVER] websocket read: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendWS(conn, wsResponse{Type: "error", Error: "invalid message format"})
			continue
		}

		resp := s.answer(r.Context(), msg.Query, msg.SessionID)
		s.sendWS(conn, wsResponse{
			Type:      "answer",
			Answer:    resp.Answer,
			Sources:   resp.Sources,
			Citations: resp.Citations,
			SessionID: resp.SessionID,
		})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("[SERVER] websocket write: %v", err)
	}
}
