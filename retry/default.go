package retry

import "sync"

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := New(DefaultConfig())
	if err != nil {
		panic("retry: default config invalid: " + err.Error())
	}
	return e
})

// Default returns the engine built from DefaultConfig.
//
// There is deliberately no way to replace it: callers wanting a different
// policy construct their own Engine from an explicit Config.
func Default() *Engine {
	return defaultEngine()
}
