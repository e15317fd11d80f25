package handlers

import (
	"time"

	"github.com/anjiri1684/skill_swap/database"
	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/services"
	"github.com/anjiri1684/skill_swap/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	wsAuthWait = 10 * time.Second
	wsPongWait = 60 * time.Second
	wsMaxFrame = 8 << 10
)

type wsAuthFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type wsClientFrame struct {
	Type    string `json:"type"`
	SwapID  string `json:"swapId"`
	Content string `json:"content"`
}

// WebSocketUpgrade rejects plain HTTP requests to the websocket route.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocketcontrib.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// ServeWs authenticates the connection with its first frame, then relays typing
// and message frames to the other participant of the referenced swap. Nothing
// is persisted here; POST /messages does that.
func ServeWs(c *websocketcontrib.Conn) {
	log := logger.L().With("component", "ws")
	defer c.Close()

	if Realtime == nil {
		_ = c.WriteJSON(websocket.Event{Type: websocket.EventError, Content: "realtime channel unavailable"})
		return
	}

	c.SetReadLimit(wsMaxFrame)
	_ = c.SetReadDeadline(time.Now().Add(wsAuthWait))

	var auth wsAuthFrame
	if err := c.ReadJSON(&auth); err != nil || auth.Type != "auth" {
		_ = c.WriteJSON(websocket.Event{Type: websocket.EventError, Content: "invalid or missing auth message"})
		return
	}
	userID, err := parseToken(auth.Token)
	if err != nil {
		log.Debug("websocket auth failed", "error", err)
		_ = c.WriteJSON(websocket.Event{Type: websocket.EventError, Content: "invalid token"})
		return
	}

	client := Realtime.Register(userID, c)
	defer Realtime.Unregister(client)

	_ = c.SetReadDeadline(time.Now().Add(wsPongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var frame wsClientFrame
		if err := c.ReadJSON(&frame); err != nil {
			if websocketcontrib.IsUnexpectedCloseError(err, websocketcontrib.CloseNormalClosure, websocketcontrib.CloseGoingAway) {
				log.Debug("websocket read error", "user_id", userID, "error", err)
			}
			return
		}
		_ = c.SetReadDeadline(time.Now().Add(wsPongWait))
		relayFrame(userID, frame)
	}
}

func relayFrame(userID uuid.UUID, frame wsClientFrame) {
	reject := func(msg string) {
		Realtime.Deliver([]uuid.UUID{userID}, websocket.Event{Type: websocket.EventError, Content: msg})
	}

	if frame.Type != websocket.EventTyping && frame.Type != websocket.EventMessage {
		reject("unsupported frame type")
		return
	}
	swapID, err := uuid.Parse(frame.SwapID)
	if err != nil {
		reject("invalid swapId")
		return
	}
	swap, err := services.GetSwapForParticipant(database.DB, swapID, userID)
	if err != nil {
		reject(err.Error())
		return
	}
	other, _ := services.OtherParticipant(swap.RequesterID, swap.ProviderID, userID)
	Realtime.Publish([]uuid.UUID{other}, websocket.Event{
		Type:     frame.Type,
		SwapID:   swapID,
		SenderID: userID,
		Content:  frame.Content,
	})
}
