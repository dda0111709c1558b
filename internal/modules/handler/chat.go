package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostforge/hostforge/internal/modules/serializer"
	"github.com/hostforge/hostforge/internal/modules/service"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(s service.ChatService) *ChatHandler {
	return &ChatHandler{svc: s}
}

// GetMessages returns the transcript, oldest first.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, serializer.Response{Data: h.svc.Transcript(c.Request.Context())})
}

type SendMessageReq struct {
	Text string `json:"text" binding:"required" example:"why is my capsule slow?"`
}

// SendMessage relays the user's text to the assistant. The reply may be nil
// when the collaborator failed; that is not an error for the caller, the
// transcript simply has no partner turn.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	req := SendMessageReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	reply, err := h.svc.Send(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrChatClosed) {
			c.JSON(http.StatusConflict, serializer.Err(http.StatusConflict, "chat session is closed", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.InternalErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{
		"reply":      reply,
		"transcript": h.svc.Transcript(c.Request.Context()),
	}})
}
