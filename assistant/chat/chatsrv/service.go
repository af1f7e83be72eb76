package chatsrv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/chat"
	"github.com/Abraxas-365/resumegpt/assistant/conversation"
	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/Abraxas-365/resumegpt/assistant/session"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/Abraxas-365/resumegpt/pkg/fsx"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
	"github.com/google/uuid"
)

// Service runs the resume upload and question answering pipeline
type Service struct {
	sessions  *session.Manager
	tokens    *session.TokenService
	files     fsx.FileSystem
	documents chat.DocumentLoader
	indexer   chat.Indexer
	generator generation.Generator
	topK      int
	now       func() time.Time
}

func NewService(
	sessions *session.Manager,
	tokens *session.TokenService,
	files fsx.FileSystem,
	documents chat.DocumentLoader,
	indexer chat.Indexer,
	generator generation.Generator,
	topK int,
) *Service {
	if topK <= 0 {
		topK = 4
	}
	return &Service{
		sessions:  sessions,
		tokens:    tokens,
		files:     files,
		documents: documents,
		indexer:   indexer,
		generator: generator,
		topK:      topK,
		now:       time.Now,
	}
}

// ============================================================================
// Upload
// ============================================================================

// Upload stores the resume, indexes it and attaches it to the session,
// creating one when the request carries none. Memory is reset.
func (s *Service) Upload(ctx context.Context, req chat.UploadRequest) (*chat.UploadResult, error) {
	if strings.TrimSpace(req.FileName) == "" || len(req.Data) == 0 {
		return nil, chat.ErrMissingFile()
	}

	format, err := document.DetectFormat(req.FileName, req.Format)
	if err != nil {
		return nil, err
	}

	var policy conversation.Policy
	if req.MemoryType != "" {
		if policy, err = conversation.ParsePolicy(req.MemoryType); err != nil {
			return nil, err
		}
	}

	doc, err := s.documents.Load(ctx, req.FileName, req.Data, format.String())
	if err != nil {
		return nil, err
	}

	sess, created := s.sessionForUpload(ctx, req.SessionID, policy)
	fail := func(err error) (*chat.UploadResult, error) {
		if created {
			s.sessions.Delete(sess.ID)
		}
		return nil, err
	}

	filePath, err := s.storeFile(ctx, sess.ID, req.FileName, format, req.Data)
	if err != nil {
		return fail(err)
	}

	idx, err := s.indexer.Build(ctx, sess.ID, doc)
	if err != nil {
		return fail(err)
	}

	token, expiresAt, err := s.tokens.Issue(sess.ID)
	if err != nil {
		return fail(err)
	}

	sess.Lock()
	if policy == "" {
		policy = sess.Memory().Policy()
	}
	sess.SetIndex(idx)
	sess.SetMemory(s.sessions.NewMemory(policy))
	sess.Unlock()

	logx.Infof("Loaded %s into session %s", req.FileName, sess.ID)

	return &chat.UploadResult{
		SessionID:      sess.ID,
		SessionToken:   token,
		TokenExpiresAt: expiresAt,
		FileName:       req.FileName,
		FilePath:       filePath,
		Format:         format.String(),
		FileSize:       len(req.Data),
		ChunksCreated:  len(doc.Chunks),
		EmbeddingModel: idx.Model,
		MemoryType:     policy.String(),
	}, nil
}

// sessionForUpload reuses the caller's session when it still exists
func (s *Service) sessionForUpload(ctx context.Context, id kernel.SessionID, policy conversation.Policy) (*session.Session, bool) {
	if !id.IsEmpty() {
		if sess, err := s.sessions.Restore(ctx, id); err == nil {
			return sess, false
		}
	}
	return s.sessions.Create(policy), true
}

// storeFile keeps the original upload at resumes/<session>/<yyyy>/<mm>/<uuid><ext>
func (s *Service) storeFile(ctx context.Context, id kernel.SessionID, name string, format document.Format, data []byte) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = "." + format.String()
	}

	filePath := s.files.Join(
		"resumes",
		id.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.NewString()+ext,
	)

	if err := s.files.WriteFile(ctx, filePath, data); err != nil {
		return "", document.ErrRegistry.NewWithCause(document.CodeStorageFailed, err).
			WithDetail("path", filePath)
	}
	return filePath, nil
}

// ============================================================================
// Questions
// ============================================================================

// Ask resolves the session and answers the question. Asking with a different
// memory type replaces the memory, which clears its history. The replacement
// only sticks once the answer is generated.
func (s *Service) Ask(ctx context.Context, id kernel.SessionID, req chat.AskRequest) (*chat.Answer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, chat.ErrEmptyQuestion()
	}

	var policy conversation.Policy
	if req.MemoryType != "" {
		p, err := conversation.ParsePolicy(req.MemoryType)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	sess, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	memory := sess.Memory()
	if policy != "" && policy != memory.Policy() {
		memory = s.sessions.NewMemory(policy)
	}

	answer, err := s.answerLocked(ctx, sess, memory, question)
	if err != nil {
		return nil, err
	}
	if memory != sess.Memory() {
		logx.Infof("Session %s switched memory from %s to %s", sess.ID, sess.Memory().Policy(), policy)
		sess.SetMemory(memory)
	}
	return answer, nil
}

// Answer runs retrieval and generation for one question and records the
// exchange. Nothing is recorded when generation fails.
func (s *Service) Answer(ctx context.Context, sess *session.Session, question string) (*chat.Answer, error) {
	sess.Lock()
	defer sess.Unlock()
	return s.answerLocked(ctx, sess, sess.Memory(), question)
}

func (s *Service) answerLocked(ctx context.Context, sess *session.Session, memory conversation.Memory, question string) (*chat.Answer, error) {
	idx := sess.Index()
	if idx == nil {
		return nil, chat.ErrNoResumeLoaded()
	}

	matches, err := s.indexer.Query(ctx, idx, question, s.topK)
	if err != nil {
		return nil, err
	}

	prompt := buildAnswerPrompt(memory.Context(), matches, question)

	answer, err := s.generator.Complete(ctx, prompt, generation.Options{})
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)

	if err := memory.Append(ctx, conversation.Exchange{
		Question:  question,
		Answer:    answer,
		Timestamp: s.now(),
	}); err != nil {
		return nil, err
	}

	return &chat.Answer{
		Question:           question,
		Answer:             answer,
		Sources:            chat.SourcesFrom(matches),
		ConversationLength: memory.Stats().TotalTurns,
	}, nil
}

// ============================================================================
// Memory
// ============================================================================

// ClearMemory empties the session's conversation history
func (s *Service) ClearMemory(ctx context.Context, id kernel.SessionID, confirm bool) error {
	if !confirm {
		return chat.ErrClearNotConfirmed()
	}
	sess, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}

	sess.Lock()
	sess.Memory().Clear()
	sess.Unlock()

	logx.Infof("Session %s memory cleared", sess.ID)
	return nil
}

// MemorySummary describes what the session currently remembers
func (s *Service) MemorySummary(ctx context.Context, id kernel.SessionID) (*chat.MemorySummary, error) {
	sess, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	stats := sess.Memory().Stats()
	sess.Unlock()
	return &stats, nil
}

// ============================================================================
// Interview preparation
// ============================================================================

// InterviewPrep retrieves the resume chunks closest to the job description
// and asks for likely questions and answers. Memory is not touched.
func (s *Service) InterviewPrep(ctx context.Context, id kernel.SessionID, req chat.InterviewPrepRequest) (*chat.InterviewPrep, error) {
	jobDescription := strings.TrimSpace(req.JobDescription)
	if jobDescription == "" {
		return nil, chat.ErrInvalidJobDescription()
	}

	sess, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	idx := sess.Index()
	sess.Unlock()
	if idx == nil {
		return nil, chat.ErrNoResumeLoaded()
	}

	matches, err := s.indexer.Query(ctx, idx, jobDescription, s.topK)
	if err != nil {
		return nil, err
	}

	prep, err := s.generator.Complete(ctx, buildInterviewPrepPrompt(matches, jobDescription), generation.Options{})
	if err != nil {
		return nil, err
	}

	return &chat.InterviewPrep{
		JobDescription: jobDescription,
		Preparation:    strings.TrimSpace(prep),
		Sources:        chat.SourcesFrom(matches),
	}, nil
}

// ResumeText returns the full text of the session's resume
func (s *Service) ResumeText(ctx context.Context, id kernel.SessionID) (kernel.ResumeText, error) {
	sess, err := s.resolve(ctx, id)
	if err != nil {
		return "", err
	}

	sess.Lock()
	defer sess.Unlock()
	if !sess.HasResume() {
		return "", chat.ErrNoResumeLoaded()
	}
	return sess.ResumeText(), nil
}

// resolve maps a missing or unknown session to NoResumeLoaded
func (s *Service) resolve(ctx context.Context, id kernel.SessionID) (*session.Session, error) {
	if id.IsEmpty() {
		return nil, chat.ErrNoResumeLoaded()
	}
	sess, err := s.sessions.Restore(ctx, id)
	if err != nil {
		if errx.IsCode(err, session.CodeSessionNotFound) {
			return nil, chat.ErrRegistry.NewWithCause(chat.CodeNoResumeLoaded, err)
		}
		return nil, err
	}
	return sess, nil
}
