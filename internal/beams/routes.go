package beams

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// frameInterval paces the stream at roughly 30 frames per second.
const frameInterval = 33 * time.Millisecond

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type   string  `json:"type"` // "hello" or "resize"
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RegisterRoutes mounts the animation stream on the given router.
func RegisterRoutes(r chi.Router, intensity float64) {
	r.Get("/ws/beams", handleStream(intensity))
}

func handleStream(intensity float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("beams: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		// The first message carries the client's viewport size.
		var hello clientMessage
		if err := conn.ReadJSON(&hello); err != nil {
			log.Printf("beams: reading hello: %v", err)
			return
		}
		if hello.Width <= 0 || hello.Height <= 0 {
			log.Printf("beams: invalid viewport %gx%g", hello.Width, hello.Height)
			return
		}

		field := NewField(hello.Width, hello.Height, intensity)
		field.Start()
		defer field.Destroy()

		resizes := make(chan clientMessage, 1)
		done := make(chan struct{})
		go readResizes(conn, resizes, done)

		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case msg := <-resizes:
				field.Resize(msg.Width, msg.Height)
			case <-ticker.C:
				if err := conn.WriteJSON(field.Step()); err != nil {
					return
				}
			}
		}
	}
}

// offerLatest queues msg on a 1-buffered channel, evicting any stale message
// the consumer has not taken yet, so the newest viewport always wins.
func offerLatest(ch chan clientMessage, msg clientMessage) {
	for {
		select {
		case ch <- msg:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// readResizes pumps resize messages from the client until the connection
// closes, then signals done.
func readResizes(conn *websocket.Conn, resizes chan clientMessage, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("beams: websocket read: %v", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "resize" && msg.Width > 0 && msg.Height > 0 {
			offerLatest(resizes, msg)
		}
	}
}
