package widget

// Decorator enriches a built widget tree before it is rendered.
type Decorator interface {
	Decorate(*Widget) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Widget) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(root *Widget) error {
	return fn(root)
}
