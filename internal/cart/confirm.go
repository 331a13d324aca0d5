package cart

import "sync"

// Confirmer asks the user a yes/no question before the cart changes
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Always confirms every prompt
var Always = ConfirmFunc(func(string) bool { return true })

// Preset answers every prompt with the answer given to the last Set call.
// The web storefront uses it to replay the browser's confirm dialog result.
type Preset struct {
	mu     sync.Mutex
	answer bool
}

func (p *Preset) Set(answer bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answer = answer
}

func (p *Preset) Confirm(prompt string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	answer := p.answer
	// one answer per action
	p.answer = false
	return answer
}
