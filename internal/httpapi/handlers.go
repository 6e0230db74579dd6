package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type taskRequest struct {
	Content string `json:"content"`
}

type bookmarkRequest struct {
	Content string `json:"content"`
	Comment string `json:"comment"`
}

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, CodeInvalidArgument, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) listTasks(c *gin.Context) {
	var done *bool
	if raw := strings.TrimSpace(c.Query("done")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, CodeInvalidArgument, "done must be true or false")
			return
		}
		done = &v
	}
	items, err := h.svc.ListTasks(c.Request.Context(), done)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) createTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.svc.CreateTask(c.Request.Context(), req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) updateTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.svc.UpdateTask(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) deleteTask(c *gin.Context) {
	if err := h.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) completeTask(c *gin.Context) {
	task, err := h.svc.CompleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) reopenTask(c *gin.Context) {
	task, err := h.svc.ReopenTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) listBookmarks(c *gin.Context) {
	items, err := h.svc.ListBookmarks(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) createBookmark(c *gin.Context) {
	var req bookmarkRequest
	if !bindJSON(c, &req) {
		return
	}
	bm, err := h.svc.CreateBookmark(c.Request.Context(), req.Content, req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, bm)
}

func (h *Handler) updateBookmark(c *gin.Context) {
	var req bookmarkRequest
	if !bindJSON(c, &req) {
		return
	}
	bm, err := h.svc.UpdateBookmark(c.Request.Context(), c.Param("id"), req.Content, req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bm)
}

func (h *Handler) deleteBookmark(c *gin.Context) {
	if err := h.svc.DeleteBookmark(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listNotes(c *gin.Context) {
	items, err := h.svc.ListNotes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) createNote(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.svc.CreateNote(c.Request.Context(), req.Title, req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *Handler) getNote(c *gin.Context) {
	note, err := h.svc.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) updateNote(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.svc.UpdateNote(c.Request.Context(), c.Param("id"), req.Title, req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) deleteNote(c *gin.Context) {
	if err := h.svc.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
