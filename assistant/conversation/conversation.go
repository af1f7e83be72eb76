package conversation

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Policy selects how much of the conversation is kept
type Policy string

const (
	PolicyBuffer  Policy = "buffer"
	PolicyWindow  Policy = "window"
	PolicySummary Policy = "summary"
)

var Policies = []Policy{PolicyBuffer, PolicyWindow, PolicySummary}

func (p Policy) String() string { return string(p) }

// ParsePolicy accepts the policy names case-insensitively
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyBuffer, PolicyWindow, PolicySummary:
		return p, nil
	}
	return "", ErrInvalidPolicy().WithDetail("memory_type", s).WithDetail("supported", Policies)
}

// Exchange is one question and its answer
type Exchange struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Message is one side of an exchange
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleHuman     = "human"
	RoleAssistant = "ai"
)

// Stats describes the memory for the summary endpoint
type Stats struct {
	Policy          Policy    `json:"memory_type"`
	RetainedTurns   int       `json:"conversation_turns"`
	TotalTurns      int       `json:"total_turns"`
	TotalMessages   int       `json:"total_messages"`
	LastMessages    []Message `json:"last_messages"`
	EstimatedTokens int       `json:"estimated_tokens"`
	Summary         string    `json:"summary,omitempty"`
}

// Config sizes the bounded policies
type Config struct {
	WindowSize        int
	SummaryTokenLimit int
}

func DefaultConfig() Config {
	return Config{WindowSize: 5, SummaryTokenLimit: 1000}
}

// New returns an empty memory of the given policy
func New(policy Policy, cfg Config, summarizer Summarizer) Memory {
	switch policy {
	case PolicyWindow:
		return NewWindowMemory(cfg.WindowSize)
	case PolicySummary:
		return NewSummaryMemory(cfg.SummaryTokenLimit, summarizer)
	default:
		return NewBufferMemory()
	}
}

// EstimateTokens approximates model tokens as a quarter of the rune count
func EstimateTokens(s string) int {
	return (utf8.RuneCountInString(s) + 3) / 4
}

const summaryHeader = "Summary of earlier conversation:\n"

func renderExchanges(exchanges []Exchange) string {
	blocks := make([]string, len(exchanges))
	for i, ex := range exchanges {
		blocks[i] = "Human: " + ex.Question + "\nAssistant: " + ex.Answer
	}
	return strings.Join(blocks, "\n\n")
}

func renderContext(summary string, exchanges []Exchange) string {
	history := renderExchanges(exchanges)
	if summary == "" {
		return history
	}
	return summaryHeader + summary + "\n\n" + history
}

func buildStats(policy Policy, summary string, retained []Exchange, total int) Stats {
	msgs := make([]Message, 0, 2*len(retained))
	for _, ex := range retained {
		msgs = append(msgs,
			Message{Role: RoleHuman, Content: ex.Question},
			Message{Role: RoleAssistant, Content: ex.Answer},
		)
	}
	last := msgs[max(0, len(msgs)-4):]

	return Stats{
		Policy:          policy,
		RetainedTurns:   len(retained),
		TotalTurns:      total,
		TotalMessages:   len(msgs),
		LastMessages:    append([]Message{}, last...),
		EstimatedTokens: EstimateTokens(renderContext(summary, retained)),
		Summary:         summary,
	}
}
