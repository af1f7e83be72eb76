package contentsrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/content"
	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
)

const coverLetterPrompt = `You are a career coach. Given my resume and this job description, write a professional cover letter.

The cover letter should:
- Highlight relevant experience from the resume
- Match skills to the job requirements
- Be professional and engaging
- Be 3-4 paragraphs long

Resume:
%s

Job description:
%s

Cover letter:`

const questionsPrompt = `You are an interviewer. Simulate exactly %d interview questions for a %s role.
%s
Return only the questions as a numbered list ("1.", "2.", ...), one question per item, without answers or commentary.`

// Service generates standalone content from a resume. Neither operation
// uses retrieval or conversation memory.
type Service struct {
	generator     generation.Generator
	questionCount int
}

func NewService(generator generation.Generator, questionCount int) *Service {
	if questionCount <= 0 {
		questionCount = content.DefaultQuestionCount
	}
	return &Service{
		generator:     generator,
		questionCount: questionCount,
	}
}

// QuestionCount is the number of questions GenerateQuestions returns
func (s *Service) QuestionCount() int { return s.questionCount }

// GenerateCoverLetter writes a cover letter from the full resume text
func (s *Service) GenerateCoverLetter(ctx context.Context, jobDescription kernel.JobDescription, resume kernel.ResumeText) (*content.CoverLetter, error) {
	jd := strings.TrimSpace(string(jobDescription))
	if jd == "" {
		return nil, content.ErrInvalidJobDescription()
	}

	prompt := fmt.Sprintf(coverLetterPrompt, strings.TrimSpace(string(resume)), jd)
	letter, err := s.generator.Complete(ctx, prompt, generation.Options{})
	if err != nil {
		return nil, err
	}

	return &content.CoverLetter{
		JobDescription: kernel.JobDescription(jd),
		Text:           strings.TrimSpace(letter),
	}, nil
}

// GenerateQuestions asks for a fixed number of interview questions for role.
// The resume, when present, tailors them to the candidate.
func (s *Service) GenerateQuestions(ctx context.Context, role kernel.Role, resume kernel.ResumeText) (*content.InterviewQuestions, error) {
	r := strings.TrimSpace(string(role))
	if r == "" {
		return nil, content.ErrInvalidRole()
	}

	var resumeSection string
	if text := strings.TrimSpace(string(resume)); text != "" {
		resumeSection = "Base the questions on my resume:\n" + text + "\n"
	}

	prompt := fmt.Sprintf(questionsPrompt, s.questionCount, r, resumeSection)
	raw, err := s.generator.Complete(ctx, prompt, generation.Options{})
	if err != nil {
		return nil, err
	}

	questions, err := content.ParseNumberedList(raw, s.questionCount)
	if err != nil {
		logx.Warnf("Interview questions for %q could not be parsed: %v", r, err)
		return nil, err
	}

	return &content.InterviewQuestions{
		Role:      kernel.Role(r),
		Questions: questions,
	}, nil
}
