package hooks

// Hook binds a command to the lifecycle events it runs on.
type Hook struct {
	Name    string
	Events  []HookEvent
	Command Command

	// OnlyIf lists tasks of which at least one must be in the plan. Empty means always.
	OnlyIf []string
}

func (h *Hook) handles(event HookEvent) bool {
	for _, e := range h.Events {
		if e == event {
			return true
		}
	}
	return false
}
