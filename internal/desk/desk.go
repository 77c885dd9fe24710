// Package desk drives a writing action end to end: classify the lane,
// compose the brief, call the completion collaborator, apply the result,
// persist. One logical thread of control owns the state throughout; the
// collaborator call is the only blocking step and the state is never
// left dirty across it.
package desk

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/superhappyfuntimellc/Olivetti/internal/brief"
	"github.com/superhappyfuntimellc/Olivetti/internal/partner"
	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

// ErrEmptyDraft reports that an action other than Write was requested on
// an empty draft. Informational, not a failure.
var ErrEmptyDraft = errors.New("draft is empty, use Write to start")

// Desk wires the classifier, composer, collaborator, and store together.
type Desk struct {
	store     *state.Store
	completer partner.Completer
	log       *zap.Logger
}

// New creates a Desk. A nil logger is replaced with a no-op logger.
func New(store *state.Store, completer partner.Completer, log *zap.Logger) *Desk {
	if log == nil {
		log = zap.NewNop()
	}
	return &Desk{store: store, completer: completer, log: log}
}

// Result reports one executed action.
type Result struct {
	Action brief.Action
	Lane   lane.Lane
	Text   string
	// ToolOutput is true when the text landed in the project's
	// tool-output field instead of the draft.
	ToolOutput bool
}

// Execute runs action against the active project of st. On collaborator
// failure no mutation occurs and the prior in-memory state is retained;
// the caller may retry. A successful result is applied and persisted.
func (d *Desk) Execute(ctx context.Context, st *state.AppState, action brief.Action) (*Result, error) {
	project, err := st.Current()
	if err != nil {
		return nil, err
	}
	if project.Draft == "" && action != brief.ActionWrite {
		return nil, ErrEmptyDraft
	}

	l := lane.Classify(project.Draft)
	b := brief.Compose(action, l, project, &st.VoiceBible)

	d.log.Debug("composed brief",
		zap.String("action", string(action)),
		zap.String("lane", string(l)),
		zap.Float64("temperature", b.Temperature))

	// The collaborator call blocks; state is mutated only after it
	// returns successfully.
	callCtx, cancel := context.WithTimeout(ctx, partner.RequestTimeout)
	defer cancel()

	text, err := d.completer.Complete(callCtx, b.System, b.Task, b.Temperature)
	if err != nil {
		d.log.Warn("collaborator call failed",
			zap.String("action", string(action)), zap.Error(err))
		return nil, fmt.Errorf("%s failed: %w", action, err)
	}

	brief.Apply(action, project, text)

	if err := d.store.Save(st); err != nil {
		// The result is applied in memory; the previously committed
		// file is untouched. Report, do not crash.
		d.log.Error("state save failed after action", zap.Error(err))
		return nil, fmt.Errorf("save after %s: %w", action, err)
	}

	return &Result{
		Action:     action,
		Lane:       l,
		Text:       text,
		ToolOutput: action == brief.ActionSynonym || action == brief.ActionSentence,
	}, nil
}

// Section generation runs as a writing coach, not the editing partner:
// fixed temperature, only the draft head as context.
const (
	coachTemperature = 0.7
	coachContextHead = 500
)

// GenerateSection asks the collaborator to draft a story-bible section
// from the opening of the active draft, stores it, and persists. On
// collaborator failure the section keeps its prior content.
func (d *Desk) GenerateSection(ctx context.Context, st *state.AppState, section string) (string, error) {
	project, err := st.Current()
	if err != nil {
		return "", err
	}

	head := project.Draft
	if len(head) > coachContextHead {
		head = head[:coachContextHead]
	}
	system := fmt.Sprintf("You are an expert writing coach. Generate %s content for a story.", section)
	task := fmt.Sprintf("Based on this context:\n%s\n\nGenerate %s:", head, section)

	callCtx, cancel := context.WithTimeout(ctx, partner.RequestTimeout)
	defer cancel()

	text, err := d.completer.Complete(callCtx, system, task, coachTemperature)
	if err != nil {
		d.log.Warn("section generation failed",
			zap.String("section", section), zap.Error(err))
		return "", fmt.Errorf("generate %s: %w", section, err)
	}

	if project.StoryBible == nil {
		project.StoryBible = map[string]string{}
	}
	project.StoryBible[section] = text
	project.Touch()

	if err := d.store.Save(st); err != nil {
		d.log.Error("state save failed after section generation", zap.Error(err))
		return "", fmt.Errorf("save after generating %s: %w", section, err)
	}
	return text, nil
}
