package contentapi

import (
	"github.com/Abraxas-365/resumegpt/assistant/content"
	"github.com/Abraxas-365/resumegpt/assistant/content/contentsrv"
	"github.com/Abraxas-365/resumegpt/assistant/session"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for cover letters and interview questions
type Handlers struct {
	service *contentsrv.Service
	resumes content.ResumeSource
}

func NewHandlers(service *contentsrv.Service, resumes content.ResumeSource) *Handlers {
	return &Handlers{
		service: service,
		resumes: resumes,
	}
}

// CoverLetter writes a cover letter for the session's resume
// GET|POST /generate-cover-letter
func (h *Handlers) CoverLetter(c *fiber.Ctx) error {
	var req content.CoverLetterRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if req.Description() == "" {
		return content.ErrInvalidJobDescription()
	}

	sessionID, _ := session.GetSessionID(c)
	resume, err := h.resumes.ResumeText(c.Context(), sessionID)
	if err != nil {
		return err
	}

	letter, err := h.service.GenerateCoverLetter(c.Context(), req.Description(), resume)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":       "success",
		"cover_letter": letter.Text,
	})
}

// InterviewQuestions lists likely questions for a role. A loaded resume is
// used when the request carries a session.
// GET|POST /generate-interview-questions
func (h *Handlers) InterviewQuestions(c *fiber.Ctx) error {
	var req content.InterviewQuestionsRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	var resume kernel.ResumeText
	if sessionID, ok := session.GetSessionID(c); ok {
		text, err := h.resumes.ResumeText(c.Context(), sessionID)
		if err == nil {
			resume = text
		}
	}

	questions, err := h.service.GenerateQuestions(c.Context(), kernel.Role(req.Role), resume)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":    "success",
		"role":      questions.Role,
		"questions": questions.Questions,
	})
}

// bindRequest reads query parameters on GET and the body otherwise
func bindRequest(c *fiber.Ctx, out any) error {
	if c.Method() == fiber.MethodGet || len(c.Body()) == 0 {
		if err := c.QueryParser(out); err != nil {
			return content.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return content.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	return nil
}

// RegisterRoutes mounts both content endpoints and their short aliases
func RegisterRoutes(app *fiber.App, handlers *Handlers, sessionMiddleware fiber.Handler) {
	for _, path := range []string{"/generate-cover-letter", "/cover-letter"} {
		app.Get(path, sessionMiddleware, handlers.CoverLetter)
		app.Post(path, sessionMiddleware, handlers.CoverLetter)
	}
	for _, path := range []string{"/generate-interview-questions", "/interview"} {
		app.Get(path, sessionMiddleware, handlers.InterviewQuestions)
		app.Post(path, sessionMiddleware, handlers.InterviewQuestions)
	}
}
