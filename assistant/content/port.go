package content

import (
	"context"

	"github.com/Abraxas-365/resumegpt/pkg/kernel"
)

// ResumeSource returns the resume attached to a session
type ResumeSource interface {
	ResumeText(ctx context.Context, sessionID kernel.SessionID) (kernel.ResumeText, error)
}
