package hooks

import (
	"github.com/samber/lo"
)

// Task names a cloverkit task that can be requested for one invocation.
const (
	TaskGenerateReport   = "cloverGenerateReport"
	TaskAggregateReports = "cloverAggregateReports"
)

// Plan is the set of tasks requested for one invocation.
type Plan struct {
	tasks []string
}

// dependsOn lists the tasks each task needs to have run first.
var dependsOn = map[string][]string{
	// Aggregating requires this project's classes restored and its own report rendered.
	TaskAggregateReports: {TaskGenerateReport},
}

// NewPlan returns a plan with the given tasks and their dependencies, each
// dependency ahead of the task that needs it.
func NewPlan(tasks ...string) Plan {
	var all []string
	for _, task := range tasks {
		all = append(all, dependsOn[task]...)
		all = append(all, task)
	}
	return Plan{tasks: lo.Uniq(all)}
}

// Tasks returns the requested tasks.
func (p Plan) Tasks() []string {
	return append([]string(nil), p.tasks...)
}

// Has reports whether task was requested.
func (p Plan) Has(task string) bool {
	return lo.Contains(p.tasks, task)
}

// HasAny reports whether at least one of tasks was requested.
func (p Plan) HasAny(tasks ...string) bool {
	return lo.SomeBy(tasks, p.Has)
}
