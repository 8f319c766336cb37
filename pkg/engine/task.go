package engine

import (
	"slices"
)

// Attr is one attribute of a task. Order is preserved in the rendered build file.
type Attr struct {
	Key   string
	Value string
}

// Task is a single Ant task invocation with its attributes and nested elements.
type Task struct {
	Name     string
	Attrs    []Attr
	Children []Task
}

// NewTask returns a task named name with no attributes.
func NewTask(name string) Task {
	return Task{Name: name}
}

// With returns a copy of t with key=value appended.
func (t Task) With(key, value string) Task {
	t.Attrs = append(slices.Clip(t.Attrs), Attr{Key: key, Value: value})
	return t
}

// WithIf appends key=value only when value is not empty.
func (t Task) WithIf(key, value string) Task {
	if value == "" {
		return t
	}
	return t.With(key, value)
}

// WithChild returns a copy of t with children appended.
func (t Task) WithChild(children ...Task) Task {
	t.Children = append(slices.Clip(t.Children), children...)
	return t
}

// Attr returns the value of the first attribute named key.
func (t Task) Attr(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// ChildrenNamed returns the nested elements named name.
func (t Task) ChildrenNamed(name string) []Task {
	var out []Task
	for _, c := range t.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
