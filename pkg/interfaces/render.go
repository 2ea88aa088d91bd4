package interfaces

// RendererRegistry answers whether a code-fence language tag has a renderer
// available on the host. The export core only ever asks the question; it
// never renders. Absence of a registry (nil) means nothing can be rendered.
type RendererRegistry interface {
	CanRender(lang string) bool
}

// RendererRegistryFunc adapts a plain function to the RendererRegistry port.
type RendererRegistryFunc func(lang string) bool

// CanRender satisfies RendererRegistry.
func (f RendererRegistryFunc) CanRender(lang string) bool {
	if f == nil {
		return false
	}
	return f(lang)
}
