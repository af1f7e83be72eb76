package kernel

type ResumeText string

type JobDescription string

type Role string

type Embedding []float32

// Dimension returns the vector length
func (e Embedding) Dimension() int { return len(e) }
