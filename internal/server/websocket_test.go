package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func dialPractice(t *testing.T, ts *httptest.Server, deckID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/practice?deck_id=" + deckID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial practice socket: %v", err)
	}
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read websocket message: %v", err)
	}
	return msg
}

func sendWSMessage(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	msg := wsMessage{Type: msgType}
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("failed to marshal %s payload: %v", msgType, err)
		}
		msg.Data = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("failed to send %s: %v", msgType, err)
	}
}

func decodeWSData(t *testing.T, msg wsMessage, out any) {
	t.Helper()
	if err := json.Unmarshal(msg.Data, out); err != nil {
		t.Fatalf("failed to decode %s data %q: %v", msg.Type, msg.Data, err)
	}
}

func TestPracticeSocket(t *testing.T) {
	t.Parallel()
	srv, st := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	deck := uploadTestDeck(t, srv.Handler())

	conn := dialPractice(t, ts, deck.DeckID)
	defer conn.Close()

	// Opening hand arrives unprompted.
	msg := readWS(t, conn)
	if msg.Type != "hand" {
		t.Fatalf("expected hand message, got %s", msg.Type)
	}
	var session SessionResponse
	decodeWSData(t, msg, &session)
	if session.CurrentHand.Size != 7 || session.MulliganCount != 0 {
		t.Fatalf("unexpected opening hand: %+v", session)
	}

	sendWSMessage(t, conn, "mulligan", nil)
	msg = readWS(t, conn)
	if msg.Type != "hand" {
		t.Fatalf("expected hand after mulligan, got %s", msg.Type)
	}
	decodeWSData(t, msg, &session)
	if session.MulliganCount != 1 || session.CurrentHand.Size != 7 {
		t.Fatalf("unexpected hand after mulligan: %+v", session)
	}

	// A bad keep reports an error without killing the connection.
	sendWSMessage(t, conn, "keep", KeepHandRequest{CardsToBottom: []string{"Black Lotus"}})
	msg = readWS(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error for bad keep, got %s", msg.Type)
	}

	sendWSMessage(t, conn, "keep", KeepHandRequest{
		CardsToBottom: []string{session.CurrentHand.Cards[0].Name},
	})
	msg = readWS(t, conn)
	if msg.Type != "hand" {
		t.Fatalf("expected hand after keep, got %s", msg.Type)
	}
	decodeWSData(t, msg, &session)
	if session.CurrentHand.Size != 6 {
		t.Fatalf("expected 6 cards after keeping at 1 mulligan, got %d", session.CurrentHand.Size)
	}

	sendWSMessage(t, conn, "decision", DecisionRequest{Decision: "keep", Reason: "kept it"})
	msg = readWS(t, conn)
	if msg.Type != "decision_recorded" {
		t.Fatalf("expected decision_recorded, got %s", msg.Type)
	}
	var decision DecisionResponse
	decodeWSData(t, msg, &decision)
	if decision.Decision != "keep" || decision.MulliganCount != 1 {
		t.Fatalf("unexpected decision record: %+v", decision)
	}

	sendWSMessage(t, conn, "end", nil)

	records, err := st.AllDecisions()
	if err != nil {
		t.Fatalf("failed to read decisions: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 persisted decision, got %d", len(records))
	}
}

func TestPracticeSocketUnknownDeck(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/practice?deck_id=missing"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown deck")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 refusing the upgrade, got %+v", resp)
	}
}
