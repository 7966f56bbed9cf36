package server

import (
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/Abdul234Malik/NELFUND/internal/agent"
)

func dialTestWS(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestChatWS_AnswerFrame(t *testing.T) {
	pipeline := &stubPipeline{results: map[string]agent.Result{
		"when does repayment start?": {
			Answer:  "Two years after NYSC.",
			Sources: []string{"faq.pdf"},
			Intent:  agent.IntentPolicy,
		},
	}}
	srv, _ := newTestServer(t, pipeline)
	conn := dialTestWS(t, srv)

	if err := conn.WriteJSON(wsMessage{Query: "when does repayment start?"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "answer" {
		t.Fatalf("expected answer frame, got %q (error: %q)", resp.Type, resp.Error)
	}
	if resp.Answer != "Two years after NYSC." {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
	if !reflect.DeepEqual(resp.Sources, []string{"faq.pdf"}) {
		t.Errorf("unexpected sources: %v", resp.Sources)
	}
	if !reflect.DeepEqual(resp.Citations, resp.Sources) {
		t.Errorf("citations %v do not mirror sources %v", resp.Citations, resp.Sources)
	}
}

func TestChatWS_MultipleExchangesOnOneConnection(t *testing.T) {
	pipeline := &stubPipeline{results: map[string]agent.Result{
		"hello": {Answer: "Hi there!", Sources: []string{}, Intent: agent.IntentGreeting},
	}}
	srv, _ := newTestServer(t, pipeline)
	conn := dialTestWS(t, srv)

	for i := 0; i < 2; i++ {
		if err := conn.WriteJSON(wsMessage{Query: "hello"}); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		var resp wsResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if resp.Type != "answer" || resp.Answer != "Hi there!" {
			t.Errorf("exchange %d: got type %q answer %q", i, resp.Type, resp.Answer)
		}
	}
}

func TestChatWS_MissingQueryReturnsErrorAnswer(t *testing.T) {
	srv, _ := newTestServer(t, &stubPipeline{})
	conn := dialTestWS(t, srv)

	if err := conn.WriteJSON(wsMessage{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "answer" {
		t.Fatalf("expected answer frame, got %q", resp.Type)
	}
	if resp.Answer != "Error: No query or message provided" {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
}

func TestChatWS_MalformedJSONGetsErrorFrame(t *testing.T) {
	srv, _ := newTestServer(t, &stubPipeline{})
	conn := dialTestWS(t, srv)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || resp.Error == "" {
		t.Errorf("expected error frame, got type %q error %q", resp.Type, resp.Error)
	}
}
