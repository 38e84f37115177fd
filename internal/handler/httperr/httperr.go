package httperr

import (
	"net/http"

	"slot-booking-manager/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

const (
	MsgSlotNotFound      = "Timeslot not found"
	MsgSlotAlreadyBooked = "Timeslot already booked"
	MsgSlotPassed        = "Timeslot already passed"
	MsgInternal          = "Internal server error"
)

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithDomainError maps a coordinator error onto its status and stable
// message. Validation failures carry the rule that was broken.
func AbortWithDomainError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.Is(err, errs.ErrUnauthorized):
		AbortWithError(c, http.StatusUnauthorized, err, "Unauthorized", nil)
	case errs.Is(err, errs.ErrSlotNotFound):
		AbortWithError(c, http.StatusNotFound, err, MsgSlotNotFound, nil)
	case errs.Is(err, errs.ErrAlreadyBooked):
		AbortWithError(c, http.StatusConflict, err, MsgSlotAlreadyBooked, nil)
	case errs.Is(err, errs.ErrSlotPassed):
		AbortWithError(c, http.StatusConflict, err, MsgSlotPassed, nil)
	default:
		AbortWithError(c, http.StatusInternalServerError, err, MsgInternal, nil)
	}
}
