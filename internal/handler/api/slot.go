package api

import (
	"io"
	"net/http"
	"time"

	reqdto "slot-booking-manager/internal/handler/dto/request"
	resdto "slot-booking-manager/internal/handler/dto/response"
	"slot-booking-manager/internal/handler/httperr"
	"slot-booking-manager/internal/pkg/config"
	"slot-booking-manager/internal/usecase/commands"
	"slot-booking-manager/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const sseMessageEvent = "message"

type SlotHandler struct {
	cmds      commands.SlotCommands
	q         queries.SlotQueries
	keepAlive time.Duration
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries, cfg config.Config) *SlotHandler {
	return &SlotHandler{
		cmds:      cmds,
		q:         q,
		keepAlive: cfg.Server.SSEKeepAlive,
	}
}

// StreamSlots sends the current slot list as a server-sent event and then a
// new event after every change until the client disconnects.
func (h *SlotHandler) StreamSlots(c *gin.Context) {
	ctx := c.Request.Context()
	sub := h.q.Subscribe(ctx)
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	keepAlive := h.keepAlive
	if keepAlive <= 0 {
		keepAlive = 15 * time.Second
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-sub.Updates():
			if !ok {
				return false
			}
			c.SSEvent(sseMessageEvent, resdto.FromSlots(snap.Slots))
			return true
		case <-ticker.C:
			_, err := io.WriteString(w, ": keepalive\n\n")
			return err == nil
		case <-ctx.Done():
			return false
		}
	})
}

func (h *SlotHandler) ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromSlots(h.q.ListSlots(c.Request.Context())))
}

func (h *SlotHandler) BookSlot(c *gin.Context) {
	var req reqdto.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	booked, err := h.cmds.BookSlot(c.Request.Context(), req.ID, req.ClientName)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{
		Message: "Timeslot booked successfully",
		Slot:    resdto.FromSlot(booked),
	})
}

func (h *SlotHandler) AddSlot(c *gin.Context) {
	var req reqdto.AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	added, err := h.cmds.AddSlot(c.Request.Context(), req.Datetime, req.Notes)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.MessageResponse{
		Message: "Timeslot added successfully",
		Slot:    resdto.FromSlot(added),
	})
}

func (h *SlotHandler) RemoveSlot(c *gin.Context) {
	var req reqdto.RemoveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if err := h.cmds.RemoveSlot(c.Request.Context(), req.ID); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Timeslot removed successfully"})
}

func (h *SlotHandler) RemoveAllSlots(c *gin.Context) {
	if err := h.cmds.RemoveAllSlots(c.Request.Context()); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "All timeslots removed successfully"})
}

// AdminPage only answers once the admin middleware has let the request through.
func (h *SlotHandler) AdminPage(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "ok"})
}

func abortWithBindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", reqdto.Violations(err))
}
