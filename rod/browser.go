package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced. Chrome's memory baseline grows over a long session even when
// pages are closed.
const DefaultMaxPages = 75

// instance is one launched browser and the pages open on it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	open     sync.WaitGroup
}

func (i *instance) close() error {
	err := i.browser.Close()
	i.launcher.Kill()
	return err
}

// session owns a headless browser and replaces it every maxPages pages.
// A replaced browser is closed once its open pages are released.
// session is safe for concurrent use.
type session struct {
	mu       sync.Mutex
	current  *instance
	pages    int
	maxPages int
}

func newSession(maxPages int) (*session, error) {
	inst, err := launch()
	if err != nil {
		return nil, err
	}
	return &session{current: inst, maxPages: maxPages}, nil
}

// acquire returns the browser to render one page on. Callers must call the
// returned release func once the page is closed.
func (s *session) acquire() (*rod.Browser, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, nil, fmt.Errorf("browser closed")
	}

	if s.maxPages > 0 && s.pages >= s.maxPages {
		// Keep the old browser when a replacement cannot be started.
		if next, err := launch(); err == nil {
			old := s.current
			s.current = next
			s.pages = 0
			go func() {
				old.open.Wait()
				_ = old.close()
			}()
		}
	}

	inst := s.current
	s.pages++
	inst.open.Add(1)
	return inst.browser, inst.open.Done, nil
}

func (s *session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	err := s.current.close()
	s.current = nil
	return err
}

func (s *session) pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.launcher.PID()
}

// launch starts a headless browser with flags that keep background pages
// from being throttled.
func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}
