package chatsrv

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/index"
)

const answerInstructions = `You are a helpful assistant analyzing a resume. Use the conversation history and the resume excerpts to answer questions naturally.

Instructions:
- Answer based ONLY on the resume content provided
- If information isn't in the resume, say "This information is not available in the resume"
- Reference the previous conversation when the question refers back to it (for example "those skills" or "that company")
- Be specific and cite relevant experience when possible
- Keep responses concise but informative`

const interviewPrepInstructions = `You are a career coach preparing a candidate for a job interview. Use ONLY the resume excerpts as evidence of the candidate's experience.

Provide:
1. 5 likely interview questions based on the job requirements
2. Suggested answers using specific examples from the resume
3. Questions the candidate should ask the interviewer

Format your response clearly with numbered sections.`

// buildAnswerPrompt lays out instructions, history, sources and question in that order
func buildAnswerPrompt(history string, matches []index.Match, question string) string {
	var b strings.Builder
	b.WriteString(answerInstructions)
	b.WriteString("\n\nPrevious conversation:\n")
	if history == "" {
		b.WriteString("(none)")
	} else {
		b.WriteString(history)
	}
	b.WriteString("\n\nResume context:\n")
	writeSources(&b, matches)
	b.WriteString("\nCurrent question: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")
	return b.String()
}

func buildInterviewPrepPrompt(matches []index.Match, jobDescription string) string {
	var b strings.Builder
	b.WriteString(interviewPrepInstructions)
	b.WriteString("\n\nResume context:\n")
	writeSources(&b, matches)
	b.WriteString("\nJob description:\n")
	b.WriteString(jobDescription)
	b.WriteString("\n\nInterview preparation:")
	return b.String()
}

func writeSources(b *strings.Builder, matches []index.Match) {
	if len(matches) == 0 {
		b.WriteString("(no matching resume content)\n")
		return
	}
	for i, m := range matches {
		fmt.Fprintf(b, "[Source %d | chunk %s]\n%s\n\n", i+1, m.Chunk.ID, m.Chunk.Text)
	}
}
