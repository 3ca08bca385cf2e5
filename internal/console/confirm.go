package console

// Confirmer asks the operator to approve a destructive action before any
// request is sent. A declined confirmation means nothing happens at all.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }
