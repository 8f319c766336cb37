// Package engine invokes Clover through its Ant tasks.
package engine

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_engine.go -package=$GOPACKAGE

import (
	"context"
)

// Engine runs Clover tasks. One Execute call is one external invocation and
// the tasks run in order.
type Engine interface {
	Execute(ctx context.Context, tasks []Task) error
}
