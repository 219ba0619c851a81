package sortview

import "sync"

// fakePresenter records what Run hands it. poll, when set, decides the
// command returned by each Poll call.
type fakePresenter struct {
	mu       sync.Mutex
	titles   []string
	presents int
	err      error
	poll     func() Command
}

func (p *fakePresenter) Present(*Canvas) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presents++
	return p.err
}

func (p *fakePresenter) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.titles = append(p.titles, title)
}

func (p *fakePresenter) Poll() Command {
	if p.poll == nil {
		return CommandNone
	}
	return p.poll()
}

func (p *fakePresenter) snapshot() (titles []string, presents int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.titles...), p.presents
}
