package mathtext

import (
	"fmt"
	"os"
	"sync"

	"github.com/dop251/goja"
)

// KaTeXRenderer runs katex.renderToString inside an embedded JavaScript VM.
// It produces the same markup as the KaTeX browser bundle, which needs the
// KaTeX stylesheet linked from the document.
//
// A goja runtime is not safe for concurrent use; calls are serialized.
type KaTeXRenderer struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	katex  goja.Value
	render goja.Callable
}

// NewKaTeXRenderer evaluates script (typically katex.min.js) and binds the
// global katex.renderToString function.
func NewKaTeXRenderer(script string) (*KaTeXRenderer, error) {
	vm := goja.New()
	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("%w: evaluating script: %v", ErrEngineInit, err)
	}

	katex := vm.Get("katex")
	if katex == nil || goja.IsUndefined(katex) || goja.IsNull(katex) {
		return nil, fmt.Errorf("%w: script does not define katex", ErrEngineInit)
	}

	render, ok := goja.AssertFunction(katex.ToObject(vm).Get("renderToString"))
	if !ok {
		return nil, fmt.Errorf("%w: katex.renderToString is not a function", ErrEngineInit)
	}

	return &KaTeXRenderer{vm: vm, katex: katex, render: render}, nil
}

// LoadKaTeXRenderer reads the KaTeX bundle at path and creates a renderer.
func LoadKaTeXRenderer(path string) (*KaTeXRenderer, error) {
	script, err := os.ReadFile(path) // #nosec G304 -- operator-configured path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineInit, err)
	}
	return NewKaTeXRenderer(string(script))
}

// RenderMath renders raw with throwOnError enabled, so KaTeX parse errors
// surface as ErrMathSyntax instead of KaTeX's own inline error markup.
func (k *KaTeXRenderer) RenderMath(raw string, block bool) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	opts := k.vm.NewObject()
	_ = opts.Set("displayMode", block)
	_ = opts.Set("throwOnError", true)

	v, err := k.render(k.katex, k.vm.ToValue(raw), opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMathSyntax, err)
	}
	return v.String(), nil
}
