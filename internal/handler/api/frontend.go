package api

import (
	"net/http"
	"os"
	"strings"

	"slot-booking-manager/internal/handler/httperr"
	"slot-booking-manager/internal/pkg/config"
	"slot-booking-manager/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	titlePlaceholder = "generic_timeslot_booking_manager_name"
	hostPlaceholder  = "localhost:PORT"
)

type FrontendHandler struct {
	path  string
	title string
	port  string
}

func NewFrontendHandler(cfg config.Config) *FrontendHandler {
	return &FrontendHandler{
		path:  cfg.Frontend.Path,
		title: cfg.Frontend.Title,
		port:  cfg.Server.Port,
	}
}

// Serve reads the page on every request so edits show up without a restart.
func (h *FrontendHandler) Serve(c *gin.Context) {
	contents, err := os.ReadFile(h.path)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.Wrapf(err, "read frontend %s", h.path), "Failed to read frontend file", nil)
		return
	}

	page := strings.NewReplacer(
		titlePlaceholder, h.title,
		hostPlaceholder, "localhost:"+h.port,
	).Replace(string(contents))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
