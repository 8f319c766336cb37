package hooks

import "context"

// Command is the interface for all commands that can be run by hooks.
type Command interface {
	GetName() string
	RunE(ctx context.Context, hook *Hook, event HookEvent) error
}

// Assert that Action implements Command interface.
var _ Command = Action{}

// Action adapts a function to Command.
type Action struct {
	Name string
	Run  func(ctx context.Context) error
}

func (a Action) GetName() string {
	return a.Name
}

func (a Action) RunE(ctx context.Context, _ *Hook, _ HookEvent) error {
	return a.Run(ctx)
}
