package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/pipeline"
	"github.com/yoockh/homevisit/internal/providers/stt"
	"github.com/yoockh/homevisit/internal/services"
)

// WSHandler streams the viewing pipeline over a websocket: the client sends
// transcript fragments (or raw audio when speech-to-text is configured) and
// receives one result message per finalized utterance.
type WSHandler struct {
	orch     *pipeline.Orchestrator
	sessions services.SessionService
	speech   stt.Provider // nil when speech-to-text is not configured
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(orch *pipeline.Orchestrator, sessions services.SessionService, speech stt.Provider, log *logrus.Logger) *WSHandler {
	if log == nil {
		log = logrus.New()
	}
	return &WSHandler{
		orch:     orch,
		sessions: sessions,
		speech:   speech,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Speaker   string `json:"speaker"`

	// transcript
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`

	// audio_chunk
	AudioBase64 string `json:"audio_base64"`
	Language    string `json:"language"`
}

type wsResultMsg struct {
	Type string `json:"type"`
	models.PipelineResponse
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.writeText(b)
}

func (h *WSHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	// One session per connection unless the client names its own.
	connSessionID := uuid.NewString()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid json"}`))
			continue
		}

		sessionID := msg.SessionID
		if sessionID == "" {
			sessionID = connSessionID
		}
		role := models.RoleTenant
		if msg.Speaker == models.RoleLandlord {
			role = models.RoleLandlord
		}

		switch msg.Type {
		case "transcript":
			h.processText(ctx, wc, sessionID, role, msg.Text, msg.IsFinal)

		case "audio_chunk":
			if h.speech == nil {
				_ = wc.writeText([]byte(`{"type":"error","code":"UNAVAILABLE","message":"speech-to-text is not configured"}`))
				continue
			}
			raw := msg.AudioBase64
			if i := strings.Index(raw, ","); i >= 0 && strings.HasPrefix(raw, "data:") {
				raw = raw[i+1:]
			}
			audio, err := base64.StdEncoding.DecodeString(raw)
			if err != nil || len(audio) == 0 {
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"audio_base64 must be valid base64"}`))
				continue
			}

			text, confidence, err := h.speech.Transcribe(ctx, audio, msg.Language)
			if err != nil {
				h.log.WithError(err).Warn("transcription failed")
				_ = wc.writeText([]byte(`{"type":"error","code":"UNAVAILABLE","message":"transcription failed"}`))
				continue
			}
			_ = wc.writeJSON(gin.H{
				"type":       "transcription",
				"session_id": sessionID,
				"text":       text,
				"confidence": confidence,
			})
			h.processText(ctx, wc, sessionID, role, text, msg.IsFinal)

		case "end_session":
			h.sessions.Expire(sessionID)
			_ = wc.writeText([]byte(`{"type":"status","status":"ended"}`))
			return

		default:
			_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"unknown message type"}`))
		}
	}
}

func (h *WSHandler) processText(ctx context.Context, wc *wsConn, sessionID, role, text string, isFinal bool) {
	responses := h.orch.Process(ctx, sessionID, role, text, isFinal)
	if len(responses) == 0 {
		_ = wc.writeText([]byte(`{"type":"status","status":"buffering"}`))
		return
	}
	for _, r := range responses {
		if err := wc.writeJSON(wsResultMsg{Type: "result", PipelineResponse: r}); err != nil {
			return
		}
	}
}
