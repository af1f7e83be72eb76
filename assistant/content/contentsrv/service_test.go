package contentsrv

import (
	"context"
	"testing"

	"github.com/Abraxas-365/resumegpt/assistant/content"
	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (s *stubGenerator) Complete(_ context.Context, prompt string, _ generation.Options) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, s.err
}

func TestGenerateCoverLetter(t *testing.T) {
	gen := &stubGenerator{reply: "  Dear hiring manager,\n\nI am excited...  "}
	svc := NewService(gen, 0)

	letter, err := svc.GenerateCoverLetter(context.Background(), "Go engineer, payments", "Jane Doe\nLanguages: Python, Go")
	require.NoError(t, err)

	assert.Equal(t, "Dear hiring manager,\n\nI am excited...", letter.Text)
	assert.Contains(t, gen.prompt, "Resume:\nJane Doe\nLanguages: Python, Go")
	assert.Contains(t, gen.prompt, "Job description:\nGo engineer, payments")
}

func TestGenerateCoverLetter_EmptyJobDescription(t *testing.T) {
	gen := &stubGenerator{reply: "x"}

	_, err := NewService(gen, 0).GenerateCoverLetter(context.Background(), "  ", "resume")

	assert.True(t, errx.IsCode(err, content.CodeInvalidJobDescription))
	assert.Zero(t, gen.calls)
}

func TestGenerateCoverLetter_PropagatesGenerationFailure(t *testing.T) {
	unavailable := generation.ErrUnavailable()

	_, err := NewService(&stubGenerator{err: unavailable}, 0).GenerateCoverLetter(context.Background(), "jd", "resume")

	assert.Same(t, unavailable, err)
}

func TestGenerateQuestions(t *testing.T) {
	gen := &stubGenerator{reply: "1. One?\n2. Two?\n3. Three?\n4. Four?\n5. Five?"}
	svc := NewService(gen, 0)
	require.Equal(t, 5, svc.QuestionCount())

	qs, err := svc.GenerateQuestions(context.Background(), "Backend Engineer", "")
	require.NoError(t, err)

	assert.EqualValues(t, "Backend Engineer", qs.Role)
	assert.Equal(t, []string{"One?", "Two?", "Three?", "Four?", "Five?"}, qs.Questions)
	assert.Contains(t, gen.prompt, "exactly 5 interview questions for a Backend Engineer role")
	assert.NotContains(t, gen.prompt, "Base the questions on my resume")
}

func TestGenerateQuestions_UsesResumeWhenPresent(t *testing.T) {
	gen := &stubGenerator{reply: "1. a\n2. b"}

	_, err := NewService(gen, 2).GenerateQuestions(context.Background(), "SRE", "Jane Doe, Kubernetes")

	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "Base the questions on my resume:\nJane Doe, Kubernetes")
}

func TestGenerateQuestions_Errors(t *testing.T) {
	_, err := NewService(&stubGenerator{}, 5).GenerateQuestions(context.Background(), "", "")
	assert.True(t, errx.IsCode(err, content.CodeInvalidRole))

	_, err = NewService(&stubGenerator{reply: "I'd rather not."}, 5).GenerateQuestions(context.Background(), "SRE", "")
	assert.True(t, errx.IsCode(err, generation.CodeMalformedResponse))
}
