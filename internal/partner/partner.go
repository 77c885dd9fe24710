// Package partner wraps the completion collaborator: the language-model
// call that turns a composed brief into generated text. The core never
// inspects a failure beyond presence; everything else stays in here.
package partner

import (
	"context"
	"fmt"
	"time"
)

// RequestTimeout is the system-wide upper bound on a collaborator call.
const RequestTimeout = 60 * time.Second

// MaxOutputTokens caps the collaborator's generated length.
const MaxOutputTokens = 2000

// Completer is the interface the writing desk depends on.
type Completer interface {
	// Complete sends the system and task directives to the collaborator
	// and returns the generated text. temperature is the sampling
	// temperature from the composed brief.
	Complete(ctx context.Context, systemDirective, taskDirective string, temperature float64) (string, error)
}

// Error is a typed collaborator failure. Callers treat any Error the
// same way: no result, no draft mutation, retry manually.
type Error struct {
	Kind    string // "timeout", "auth", "rate_limit", "api", "transport"
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("partner %s: %s", e.Kind, e.Message)
}
