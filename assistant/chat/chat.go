package chat

import (
	"time"
	"unicode/utf8"

	"github.com/Abraxas-365/resumegpt/assistant/conversation"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
)

// ExcerptRunes caps the chunk text echoed back with each source
const ExcerptRunes = 200

// ============================================================================
// Requests
// ============================================================================

// UploadRequest carries one resume file. SessionID is empty for a new session.
type UploadRequest struct {
	SessionID  kernel.SessionID
	FileName   string
	Format     string
	MemoryType string
	Data       []byte
}

type AskRequest struct {
	Question   string `json:"question"`
	MemoryType string `json:"memory_type"`
}

type InterviewPrepRequest struct {
	JobDescription string `json:"job_description"`
}

// ============================================================================
// Results
// ============================================================================

type UploadResult struct {
	SessionID      kernel.SessionID `json:"session_id"`
	SessionToken   string           `json:"session_token"`
	TokenExpiresAt time.Time        `json:"token_expires_at"`
	FileName       string           `json:"filename"`
	FilePath       string           `json:"file_path"`
	Format         string           `json:"format"`
	FileSize       int              `json:"file_size"`
	ChunksCreated  int              `json:"chunks_created"`
	EmbeddingModel string           `json:"embedding_model"`
	MemoryType     string           `json:"memory_type"`
}

// Source identifies a chunk that was given to the model
type Source struct {
	ChunkID      kernel.ChunkID `json:"chunk_id"`
	Seq          int            `json:"seq"`
	SourceOffset int            `json:"source_offset"`
	Score        float64        `json:"score"`
	Excerpt      string         `json:"excerpt"`
}

type Answer struct {
	Question           string   `json:"question"`
	Answer             string   `json:"answer"`
	Sources            []Source `json:"sources"`
	ConversationLength int      `json:"conversation_length"`
}

type InterviewPrep struct {
	JobDescription string   `json:"job_description"`
	Preparation    string   `json:"preparation"`
	Sources        []Source `json:"sources"`
}

type MemorySummary = conversation.Stats

// SourcesFrom converts retrieval matches, keeping their order
func SourcesFrom(matches []index.Match) []Source {
	out := make([]Source, len(matches))
	for i, m := range matches {
		out[i] = Source{
			ChunkID:      m.Chunk.ID,
			Seq:          m.Chunk.Seq,
			SourceOffset: m.Chunk.SourceOffset,
			Score:        m.Score,
			Excerpt:      excerpt(m.Chunk.Text, ExcerptRunes),
		}
	}
	return out
}

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
