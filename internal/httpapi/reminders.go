package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/service"
	"github.com/sandeepkv93/daybook/internal/urgency"
)

func urgencyResponse(res urgency.Result) gin.H {
	return gin.H{"items": res.Items, "errors": res.Errors}
}

func (h *Handler) listReminders(c *gin.Context) {
	now, ok := h.today(c)
	if !ok {
		return
	}
	res, err := h.svc.ListReminders(c.Request.Context(), now)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, urgencyResponse(res))
}

func (h *Handler) closeReminders(c *gin.Context) {
	now, ok := h.today(c)
	if !ok {
		return
	}
	threshold, ok := intQuery(c, "threshold", h.svc.CloseThreshold(), 0, -1)
	if !ok {
		return
	}
	res, err := h.svc.CloseReminders(c.Request.Context(), now, threshold)
	if err != nil {
		h.fail(c, err)
		return
	}
	body := urgencyResponse(res)
	body["threshold"] = threshold
	c.JSON(http.StatusOK, body)
}

func (h *Handler) createReminder(c *gin.Context) {
	var req service.ReminderInput
	if !bindJSON(c, &req) {
		return
	}
	rem, err := h.svc.CreateReminder(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rem)
}

func (h *Handler) updateReminder(c *gin.Context) {
	var req service.ReminderInput
	if !bindJSON(c, &req) {
		return
	}
	rem, err := h.svc.UpdateReminder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rem)
}

func (h *Handler) deleteReminder(c *gin.Context) {
	if err := h.svc.DeleteReminder(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) advanceReminder(c *gin.Context) {
	rem, err := h.svc.AdvanceReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rem)
}

func (h *Handler) previewReminder(c *gin.Context) {
	count, ok := intQuery(c, "count", h.previewCount, 1, model.MaxPreviewCount)
	if !ok {
		return
	}
	dates, err := h.svc.PreviewReminder(c.Request.Context(), c.Param("id"), count)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "dates": dates})
}
