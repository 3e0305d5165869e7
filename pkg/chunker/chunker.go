package chunker

import (
	"errors"
	"strings"
)

// Defaults match the retrieval unit size used across the system.
const (
	DefaultWindow  = 500
	DefaultOverlap = 50
)

// ErrInvalidConfig is returned when overlap >= window (the naive
// overlap-subtraction loop would never advance) or window <= 0.
var ErrInvalidConfig = errors.New("chunker: overlap must be smaller than window and window must be positive")

// Chunk is one word-bounded overlapping segment of a document.
type Chunk struct {
	Index     int
	Content   string
	WordCount int
}

// Chunker splits text into overlapping word windows. It holds no state
// across calls; Split is a pure function of its input.
type Chunker struct {
	window  int
	overlap int
}

func New(window, overlap int) (*Chunker, error) {
	if window <= 0 || overlap < 0 || overlap >= window {
		return nil, ErrInvalidConfig
	}
	return &Chunker{window: window, overlap: overlap}, nil
}

// NewDefault returns a chunker with the 500/50 word configuration.
func NewDefault() *Chunker {
	c, _ := New(DefaultWindow, DefaultOverlap)
	return c
}

func (c *Chunker) Window() int  { return c.window }
func (c *Chunker) Overlap() int { return c.overlap }

// Split emits successive windows of c.window words, advancing the start
// by window - overlap. The final window may be shorter and is still
// emitted. Empty text yields no chunks.
func (c *Chunker) Split(text string) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []Chunk
	step := c.window - c.overlap

	for start, num := 0, 0; start < len(words); start, num = start+step, num+1 {
		end := start + c.window
		if end > len(words) {
			end = len(words)
		}
		window := words[start:end]
		chunks = append(chunks, Chunk{
			Index:     num,
			Content:   strings.Join(window, " "),
			WordCount: len(window),
		})
		if end == len(words) {
			break
		}
	}

	return chunks
}
