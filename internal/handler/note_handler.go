package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hdnotes/hdnotes/internal/pkg/response"
	"github.com/hdnotes/hdnotes/internal/service"
)

type NoteHandler struct {
	notes  *service.NoteService
	export *service.ExportService
}

func NewNoteHandler(notes *service.NoteService, export *service.ExportService) *NoteHandler {
	return &NoteHandler{notes: notes, export: export}
}

type noteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.notes.Create(c.Request.Context(), getUserID(c), service.NoteCreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.notes.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, notes)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Note deleted successfully"})
}

func (h *NoteHandler) Export(c *gin.Context) {
	html, err := h.export.RenderHTML(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
