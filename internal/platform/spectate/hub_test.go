package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

type snapshot struct {
	Mode  string `json:"mode"`
	Frame uint32 `json:"frame"`
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f Frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("decode %s: %v", payload, err)
	}
	return f
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubStreamsFrames(t *testing.T) {
	hub := startHub(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	if err := hub.Publish("alice@10.0.0.5:40022", "sleigh", 100, snapshot{Mode: "delivering", Frame: 1}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	waitFor(t, func() bool { return len(hub.broadcast) == 0 })

	conn := dial(t, srv.URL)

	// A new spectator gets the latest frame right away.
	first := readFrame(t, conn)
	if first.Session != "alice@10.0.0.5:40022" || first.Game != "sleigh" || first.Seq != 1 || first.Score != 100 {
		t.Errorf("first frame = %+v", first)
	}

	if err := hub.Publish("alice@10.0.0.5:40022", "sleigh", 250, snapshot{Mode: "krampus-attack", Frame: 2}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	second := readFrame(t, conn)
	if second.Seq != 2 || second.Score != 250 {
		t.Errorf("second frame = %+v", second)
	}
	state, ok := second.State.(map[string]any)
	if !ok || state["mode"] != "krampus-attack" {
		t.Errorf("state = %#v", second.State)
	}
}

func TestHubForgetsClosedSpectators(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	resp.Body.Close()
	waitFor(t, func() bool { return hub.Spectators() == 1 })

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitFor(t, func() bool { return hub.Spectators() == 0 })
}

func TestPublishRejectsUnencodableState(t *testing.T) {
	hub := NewHub(log.New(io.Discard))
	if err := hub.Publish("local", "sleigh", 0, func() {}); err == nil {
		t.Error("expected an encode error")
	}
}

func TestListen(t *testing.T) {
	hub := startHub(t)
	s, err := Listen("127.0.0.1:0", hub)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { s.Shutdown(context.Background()) })

	resp, err := http.Get("http://" + s.Addr() + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "0 watching") {
		t.Errorf("status page = %q", body)
	}

	conn := dial(t, "http://"+s.Addr())
	hub.Publish("local", "jingle", 5, snapshot{Frame: 9})
	if f := readFrame(t, conn); f.Game != "jingle" {
		t.Errorf("frame = %+v", f)
	}

	resp, err = http.Get("http://" + s.Addr() + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "local playing jingle, score 5") {
		t.Errorf("status page = %q", body)
	}
}

func TestFramesNameTheirSession(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	waitFor(t, func() bool { return hub.Spectators() == 1 })

	publishes := []struct {
		session string
		game    string
		score   int
	}{
		{"alice@10.0.0.5:40022", "sleigh", 10},
		{"bob@10.0.0.9:51000", "jingle", 3},
		{"alice@10.0.0.5:40022", "sleigh", 20},
	}
	for i, p := range publishes {
		if err := hub.Publish(p.session, p.game, p.score, snapshot{Frame: uint32(i)}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
		f := readFrame(t, conn)
		if f.Session != p.session || f.Game != p.game || f.Score != p.score || f.Seq != uint64(i+1) {
			t.Errorf("frame %d = %+v, want %+v", i, f, p)
		}
	}

	latest, ok := hub.Latest()
	if !ok || latest.Session != "alice@10.0.0.5:40022" || latest.Score != 20 {
		t.Errorf("Latest() = %+v, %v", latest, ok)
	}
}
