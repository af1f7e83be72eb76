package document

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"golang.org/x/crypto/blake2b"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// DefaultSeparators are tried in order, coarsest first
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter is a recursive character splitter. Sizes are counted in runes.
// Separators stay attached to the start of the piece that follows them.
type Splitter struct {
	ChunkSize  int
	Overlap    int
	Separators []string
}

func NewSplitter(size, overlap int) *Splitter {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = min(DefaultChunkOverlap, size/5)
	}
	return &Splitter{
		ChunkSize:  size,
		Overlap:    overlap,
		Separators: DefaultSeparators,
	}
}

// Split cuts text into chunks with stable ids and byte offsets into text
func (s *Splitter) Split(text string) []Chunk {
	pieces := s.split(text, s.Separators)

	chunks := make([]Chunk, 0, len(pieces))
	from := 0
	for seq, piece := range pieces {
		offset := locate(text, piece, from)
		if offset >= 0 {
			// the next chunk shares at most Overlap runes with this one
			from = max(offset+1, offset+len(piece)-tailBytes(piece, s.Overlap))
		}
		chunks = append(chunks, Chunk{
			ID:           ChunkIDFor(piece, seq),
			Seq:          seq,
			Text:         piece,
			SourceOffset: offset,
		})
	}
	return chunks
}

// ChunkIDFor derives the id from the chunk content and position
func ChunkIDFor(text string, seq int) kernel.ChunkID {
	sum := blake2b.Sum256([]byte(text))
	return kernel.NewChunkID(fmt.Sprintf("%s-%d", hex.EncodeToString(sum[:])[:12], seq))
}

// locate finds piece in text, preferring matches at or after from
func locate(text, piece string, from int) int {
	if from < len(text) {
		if i := strings.Index(text[from:], piece); i >= 0 {
			return from + i
		}
	}
	return strings.Index(text, piece)
}

// tailBytes is the byte length of the last n runes of s
func tailBytes(s string, n int) int {
	i := len(s)
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return len(s) - i
}

func (s *Splitter) split(text string, separators []string) []string {
	var final []string

	separator := separators[len(separators)-1]
	var rest []string
	for i, sep := range separators {
		if sep == "" {
			separator = sep
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			rest = separators[i+1:]
			break
		}
	}

	var good []string
	for _, piece := range splitKeepingSeparator(text, separator) {
		if utf8.RuneCountInString(piece) < s.ChunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, s.merge(good)...)
			good = nil
		}
		if len(rest) == 0 {
			final = append(final, piece)
		} else {
			final = append(final, s.split(piece, rest)...)
		}
	}
	if len(good) > 0 {
		final = append(final, s.merge(good)...)
	}
	return final
}

// merge packs small pieces into chunks no longer than ChunkSize, carrying up
// to Overlap runes of trailing pieces into the next chunk
func (s *Splitter) merge(pieces []string) []string {
	var (
		docs    []string
		current []string
		total   int
	)

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total+n > s.ChunkSize && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
				docs = append(docs, doc)
			}
			for total > s.Overlap || (total+n > s.ChunkSize && total > 0) {
				total -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n
	}

	if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

func splitKeepingSeparator(text, sep string) []string {
	if sep == "" {
		out := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			out = append(out, string(r))
		}
		return out
	}

	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	if parts[0] != "" {
		out = append(out, parts[0])
	}
	for _, p := range parts[1:] {
		out = append(out, sep+p)
	}
	return out
}
