package chatapi

import (
	"fmt"
	"io"

	"github.com/Abraxas-365/resumegpt/assistant/chat"
	"github.com/Abraxas-365/resumegpt/assistant/chat/chatsrv"
	"github.com/Abraxas-365/resumegpt/assistant/session"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for uploads, questions and memory
type Handlers struct {
	service   *chatsrv.Service
	maxUpload int64
}

func NewHandlers(service *chatsrv.Service, maxUpload int64) *Handlers {
	return &Handlers{
		service:   service,
		maxUpload: maxUpload,
	}
}

// Upload indexes a resume file
// POST /upload
func (h *Handlers) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return chat.ErrMissingFile()
	}

	if h.maxUpload > 0 && file.Size > h.maxUpload {
		return chat.ErrFileTooLarge().
			WithDetail("max_size", h.maxUpload).
			WithDetail("size", file.Size)
	}

	uploaded, err := file.Open()
	if err != nil {
		return chat.ErrMissingFile().WithDetail("open_error", err.Error())
	}
	defer uploaded.Close()

	data, err := io.ReadAll(uploaded)
	if err != nil {
		return chat.ErrMissingFile().WithDetail("read_error", err.Error())
	}

	sessionID, _ := session.GetSessionID(c)

	result, err := h.service.Upload(c.Context(), chat.UploadRequest{
		SessionID:  sessionID,
		FileName:   file.Filename,
		Format:     c.FormValue("format"),
		MemoryType: c.FormValue("memory_type"),
		Data:       data,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":           "success",
		"message":          fmt.Sprintf("Resume %s processed successfully", result.FileName),
		"session_id":       result.SessionID,
		"session_token":    result.SessionToken,
		"token_expires_at": result.TokenExpiresAt,
		"filename":         result.FileName,
		"format":           result.Format,
		"chunks_created":   result.ChunksCreated,
		"file_size":        result.FileSize,
		"embedding_model":  result.EmbeddingModel,
		"memory_type":      result.MemoryType,
	})
}

// Ask answers a question about the uploaded resume
// POST /ask
func (h *Handlers) Ask(c *fiber.Ctx) error {
	var req chat.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return chat.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	sessionID, _ := session.GetSessionID(c)

	answer, err := h.service.Ask(c.Context(), sessionID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":              "success",
		"question":            answer.Question,
		"answer":              answer.Answer,
		"sources":             answer.Sources,
		"conversation_length": answer.ConversationLength,
	})
}

type clearMemoryRequest struct {
	Confirm *bool `json:"confirm"`
}

// ClearMemory resets the conversation history
// POST /clear-memory
func (h *Handlers) ClearMemory(c *fiber.Ctx) error {
	confirm := true
	if len(c.Body()) > 0 {
		var req clearMemoryRequest
		if err := c.BodyParser(&req); err != nil {
			return chat.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
		if req.Confirm != nil {
			confirm = *req.Confirm
		}
	}

	sessionID, _ := session.GetSessionID(c)

	if err := h.service.ClearMemory(c.Context(), sessionID, confirm); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Conversation memory cleared",
	})
}

// MemorySummary reports the retained conversation state
// GET /memory-summary
func (h *Handlers) MemorySummary(c *fiber.Ctx) error {
	sessionID, _ := session.GetSessionID(c)

	summary, err := h.service.MemorySummary(c.Context(), sessionID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":         "success",
		"memory_summary": summary,
	})
}

// InterviewPrep prepares answers for a job interview from the resume
// POST /interview-prep
func (h *Handlers) InterviewPrep(c *fiber.Ctx) error {
	var req chat.InterviewPrepRequest
	if err := c.BodyParser(&req); err != nil {
		return chat.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	sessionID, _ := session.GetSessionID(c)

	prep, err := h.service.InterviewPrep(c.Context(), sessionID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":         "success",
		"interview_prep": prep,
	})
}

// RegisterRoutes mounts the chat endpoints behind the session middleware
func RegisterRoutes(app *fiber.App, handlers *Handlers, sessionMiddleware fiber.Handler) {
	app.Post("/upload", sessionMiddleware, handlers.Upload)
	app.Post("/ask", sessionMiddleware, handlers.Ask)
	app.Post("/clear-memory", sessionMiddleware, handlers.ClearMemory)
	app.Get("/memory-summary", sessionMiddleware, handlers.MemorySummary)
	app.Post("/interview-prep", sessionMiddleware, handlers.InterviewPrep)
}
