package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder enriches an error with what cloverkit prints for it: a
// title, an explanation, hints, a context table and an exit code.
type ErrorBuilder struct {
	err         error
	title       string
	explanation string
	hints       []string
	context     map[string]any
	exitCode    *int
	sentinels   []error
}

// Build starts enriching err. A sentinel passed directly stays matchable
// with errors.Is after wrapping.
func Build(err error) *ErrorBuilder {
	b := &ErrorBuilder{err: err}
	if err != nil && errors.UnwrapOnce(err) == nil {
		b.sentinels = append(b.sentinels, err)
	}
	return b
}

// Wrap wraps cause with msg and marks the result with sentinel.
func Wrap(cause error, sentinel error, msg string) *ErrorBuilder {
	return Build(errors.Wrap(cause, msg)).WithSentinel(sentinel)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(cause error, sentinel error, format string, args ...any) *ErrorBuilder {
	return Build(errors.Wrapf(cause, format, args...)).WithSentinel(sentinel)
}

func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hints = append(b.hints, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	return b.WithHint(fmt.Sprintf(format, args...))
}

// WithExplanation sets the paragraph printed under the message.
func (b *ErrorBuilder) WithExplanation(explanation string) *ErrorBuilder {
	b.explanation = explanation
	return b
}

// WithContext adds a key to the context table shown with --logs-level=Debug.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	if b.context == nil {
		b.context = make(map[string]any)
	}
	b.context[key] = value
	return b
}

// WithTitle sets the heading printed above the message.
func (b *ErrorBuilder) WithTitle(title string) *ErrorBuilder {
	b.title = title
	return b
}

func (b *ErrorBuilder) WithExitCode(code int) *ErrorBuilder {
	b.exitCode = &code
	return b
}

// WithSentinel makes errors.Is(err, sentinel) hold for the built error.
func (b *ErrorBuilder) WithSentinel(sentinel error) *ErrorBuilder {
	b.sentinels = append(b.sentinels, sentinel)
	return b
}

// Err returns the enriched error, or nil when the builder wraps nil.
func (b *ErrorBuilder) Err() error {
	if b.err == nil {
		return nil
	}

	err := b.err
	if b.explanation != "" {
		err = errors.WithDetail(err, b.explanation)
	}
	if b.title != "" {
		err = errors.WithHint(err, titlePrefix+b.title)
	}
	for _, hint := range b.hints {
		err = errors.WithHint(err, hint)
	}
	if len(b.context) > 0 {
		err = withContext(err, b.context)
	}
	for _, sentinel := range b.sentinels {
		err = errors.Mark(err, sentinel)
	}
	if b.exitCode != nil {
		err = WithExitCode(err, *b.exitCode)
	}
	return err
}

// withContext records ctx as one "k1=%s k2=%s" safe detail, keys sorted.
func withContext(err error, ctx map[string]any) error {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	format := make([]string, len(keys))
	values := make([]any, len(keys))
	for i, k := range keys {
		format[i] = k + "=%s"
		values[i] = errors.Safe(ctx[k])
	}
	return errors.WithSafeDetails(err, strings.Join(format, " "), values...)
}
