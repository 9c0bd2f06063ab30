package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// Pushing frames from several goroutines through one Writer must produce an
// intact stream on the client side.
func TestWriterSerializesConcurrentWrites(t *testing.T) {
	const goroutines = 8
	const framesEach = 25

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		writer := NewWriter(conn)
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < framesEach; j++ {
					if err := writer.WriteTyped(PongResponse{Event: EventPong}); err != nil {
						t.Errorf("write failed: %v", err)
						return
					}
				}
			}()
		}
		wg.Wait()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	}))
	defer srv.Close()

	url := strings.Replace(srv.URL, "http", "ws", 1)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	for i := 0; i < goroutines*framesEach; i++ {
		var pong PongResponse
		if err := conn.ReadJSON(&pong); err != nil {
			t.Fatalf("frame %d unreadable: %v", i, err)
		}
		if pong.Event != EventPong {
			t.Fatalf("frame %d event = %q, want %q", i, pong.Event, EventPong)
		}
	}
}
