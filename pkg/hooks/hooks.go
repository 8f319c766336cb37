// Package hooks runs cloverkit's tasks around the project's test command.
package hooks

import (
	"context"

	"github.com/cockroachdb/errors"

	log "github.com/cloverkit/cloverkit/pkg/logger"
)

// Hooks holds the registered hooks in registration order.
type Hooks struct {
	items []Hook
}

// Register appends hook.
func (h *Hooks) Register(hook Hook) {
	h.items = append(h.items, hook)
}

// Items returns the registered hooks.
func (h *Hooks) Items() []Hook {
	return append([]Hook(nil), h.items...)
}

// RunAll runs every hook registered for event whose condition the plan
// satisfies. The first error stops the run.
func (h *Hooks) RunAll(ctx context.Context, event HookEvent, plan Plan) error {
	for i := range h.items {
		hook := &h.items[i]
		if !hook.handles(event) {
			continue
		}
		if len(hook.OnlyIf) > 0 && !plan.HasAny(hook.OnlyIf...) {
			log.Debug("Skipping hook, no requested task needs it", "hook", hook.Name, "event", event, "only_if", hook.OnlyIf)
			continue
		}

		log.Debug("Running hook", "hook", hook.Name, "event", event, "command", hook.Command.GetName())
		if err := hook.Command.RunE(ctx, hook, event); err != nil {
			return errors.Wrapf(err, "hook %s", hook.Name)
		}
	}
	return nil
}

// Lifecycle registers the Clover hooks: instrumentation before the tests
// when a report or an aggregate is requested, then the report and the
// aggregate after the tests, each when requested.
func Lifecycle(instrument, report, aggregate Command) *Hooks {
	h := &Hooks{}
	h.Register(Hook{
		Name:    "cloverInstrument",
		Events:  []HookEvent{BeforeTest},
		Command: instrument,
		OnlyIf:  []string{TaskGenerateReport, TaskAggregateReports},
	})
	h.Register(Hook{
		Name:    TaskGenerateReport,
		Events:  []HookEvent{AfterTest},
		Command: report,
		OnlyIf:  []string{TaskGenerateReport},
	})
	h.Register(Hook{
		Name:    TaskAggregateReports,
		Events:  []HookEvent{AfterTest},
		Command: aggregate,
		OnlyIf:  []string{TaskAggregateReports},
	})
	return h
}
