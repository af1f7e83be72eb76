package conversation

import (
	"context"
	"slices"

	"github.com/Abraxas-365/resumegpt/pkg/logx"
)

// ============================================================================
// Buffer
// ============================================================================

// BufferMemory keeps every exchange
type BufferMemory struct {
	exchanges []Exchange
}

func NewBufferMemory() *BufferMemory { return &BufferMemory{} }

func (m *BufferMemory) Policy() Policy { return PolicyBuffer }

func (m *BufferMemory) Append(_ context.Context, ex Exchange) error {
	m.exchanges = append(m.exchanges, ex)
	return nil
}

func (m *BufferMemory) Context() string       { return renderContext("", m.exchanges) }
func (m *BufferMemory) Clear()                { m.exchanges = nil }
func (m *BufferMemory) Exchanges() []Exchange { return slices.Clone(m.exchanges) }

func (m *BufferMemory) Stats() Stats {
	return buildStats(PolicyBuffer, "", m.exchanges, len(m.exchanges))
}

// ============================================================================
// Window
// ============================================================================

// WindowMemory keeps the last N exchanges
type WindowMemory struct {
	size      int
	exchanges []Exchange
	total     int
}

func NewWindowMemory(size int) *WindowMemory {
	if size <= 0 {
		size = DefaultConfig().WindowSize
	}
	return &WindowMemory{size: size}
}

func (m *WindowMemory) Policy() Policy { return PolicyWindow }

func (m *WindowMemory) Append(_ context.Context, ex Exchange) error {
	m.exchanges = append(m.exchanges, ex)
	m.total++
	if over := len(m.exchanges) - m.size; over > 0 {
		m.exchanges = slices.Clone(m.exchanges[over:])
	}
	return nil
}

func (m *WindowMemory) Context() string       { return renderContext("", m.exchanges) }
func (m *WindowMemory) Exchanges() []Exchange { return slices.Clone(m.exchanges) }

func (m *WindowMemory) Clear() {
	m.exchanges = nil
	m.total = 0
}

func (m *WindowMemory) Stats() Stats {
	return buildStats(PolicyWindow, "", m.exchanges, m.total)
}

// ============================================================================
// Summary
// ============================================================================

// SummaryMemory keeps recent exchanges verbatim while their estimated size
// stays under the limit and folds older ones into a running summary. The
// newest exchange is never summarized.
type SummaryMemory struct {
	limit      int
	summarizer Summarizer

	summary   string
	exchanges []Exchange
	total     int
}

func NewSummaryMemory(limit int, summarizer Summarizer) *SummaryMemory {
	if limit <= 0 {
		limit = DefaultConfig().SummaryTokenLimit
	}
	return &SummaryMemory{limit: limit, summarizer: summarizer}
}

func (m *SummaryMemory) Policy() Policy { return PolicySummary }

// Append never fails on a summarizer error; the exchanges stay verbatim
// until a later append succeeds in summarizing them
func (m *SummaryMemory) Append(ctx context.Context, ex Exchange) error {
	m.exchanges = append(m.exchanges, ex)
	m.total++

	cut := 0
	for cut < len(m.exchanges)-1 && EstimateTokens(renderExchanges(m.exchanges[cut:])) > m.limit {
		cut++
	}
	if cut == 0 {
		return nil
	}

	if m.summarizer == nil {
		logx.Warnf("Memory over %d tokens but no summarizer is configured, keeping history verbatim", m.limit)
		return nil
	}

	summary, err := m.summarizer.Summarize(ctx, m.summary, m.exchanges[:cut])
	if err != nil {
		logx.Warnf("Summarizing %d exchanges failed, keeping them verbatim: %v", cut, err)
		return nil
	}

	m.summary = summary
	m.exchanges = slices.Clone(m.exchanges[cut:])
	logx.Debugf("Folded %d exchanges into the running summary", cut)
	return nil
}

func (m *SummaryMemory) Context() string       { return renderContext(m.summary, m.exchanges) }
func (m *SummaryMemory) Exchanges() []Exchange { return slices.Clone(m.exchanges) }
func (m *SummaryMemory) Summary() string       { return m.summary }

func (m *SummaryMemory) Clear() {
	m.summary = ""
	m.exchanges = nil
	m.total = 0
}

func (m *SummaryMemory) Stats() Stats {
	return buildStats(PolicySummary, m.summary, m.exchanges, m.total)
}
