package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AssistantHandler is the scripted chat widget backend. No model behind it:
// canned replies matched on keywords, same as the widget it replaces.
type AssistantHandler struct{}

func NewAssistantHandler() *AssistantHandler {
	return &AssistantHandler{}
}

type AssistantRequest struct {
	Message string `json:"message"`
}

type AssistantResponse struct {
	Reply string `json:"reply"`
}

type cannedReply struct {
	keywords []string
	reply    string
}

var cannedReplies = []cannedReply{
	{
		keywords: []string{"ship", "delivery", "deliver"},
		reply:    "Standard delivery takes 4-8 business days. Orders over $35 ship free.",
	},
	{
		keywords: []string{"return", "refund"},
		reply:    "Most items can be returned within 30 days of delivery. Start a return from your orders page.",
	},
	{
		keywords: []string{"order", "track"},
		reply:    "You can check the status of your orders on the orders page. Tracking appears once an order ships.",
	},
	{
		keywords: []string{"payment", "pay", "card"},
		reply:    "We accept all major credit and debit cards at checkout.",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hi! I can help with shipping, returns, orders and payments. What do you need?",
	},
}

const fallbackReply = "Sorry, I didn't catch that. I can help with shipping, returns, orders and payments."

// HandleMessage answers one chat message with the first keyword match.
func (h *AssistantHandler) HandleMessage(c echo.Context) error {
	var req AssistantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	msg := strings.ToLower(req.Message)
	reply := fallbackReply
	for _, canned := range cannedReplies {
		for _, kw := range canned.keywords {
			if strings.Contains(msg, kw) {
				reply = canned.reply
				break
			}
		}
		if reply != fallbackReply {
			break
		}
	}

	return c.JSON(http.StatusOK, AssistantResponse{Reply: reply})
}
