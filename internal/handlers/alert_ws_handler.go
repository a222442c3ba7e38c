package handlers

import (
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	alertws "github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/websocket"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/pkg/utils"
)

type AlertWSHandler struct {
	hub       *alertws.Hub
	jwtSecret string
}

func NewAlertWSHandler(hub *alertws.Hub, jwtSecret string) *AlertWSHandler {
	return &AlertWSHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// WebSocketAuth authenticates the upgrade request. Browsers cannot set
// headers on websocket connects, so the token is also accepted as a query
// parameter.
func (h *AlertWSHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}

func (h *AlertWSHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := alertws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *AlertWSHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
