// Package browser drives a headless chromium through go-rod for sources
// that only render their content with javascript.
package browser

import (
	"context"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Page is a loaded page.
type Page interface {
	// HTML returns the current DOM serialized as html.
	HTML() (string, error)
	// Count returns how many elements match selector.
	Count(selector string) (int, error)
	// ScrollToBottom scrolls the window to the end of the document.
	ScrollToBottom() error
	Close() error
}

// Opener loads urls into pages.
type Opener interface {
	Open(ctx context.Context, url string) (Page, error)
}

type Options struct {
	// shows the browser window
	ShowUI    bool   `json:"show_ui"`
	ProxyUrl  string `json:"proxy_url"`
	UserAgent string `json:"user_agent"`
	// navigation timeout, defaults to 30 seconds
	TimeoutSeconds int `json:"timeout_seconds"`
}

func (o Options) timeout() time.Duration {
	if o.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// Session launches the browser on the first Open and keeps it until Close.
type Session struct {
	opts Options

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func NewSession(opts Options) *Session {
	return &Session{opts: opts}
}

func (s *Session) connect() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return s.browser, nil
	}

	l := launcher.New().Headless(!s.opts.ShowUI)
	if s.opts.ProxyUrl != "" {
		l = l.Proxy(s.opts.ProxyUrl)
	}
	// the automation switch is how sites tell the browser apart from a user
	l = l.Set("disable-blink-features", "AutomationControlled")

	controlUrl, err := l.Launch()
	if err != nil {
		return nil, err
	}
	browser := rod.New().ControlURL(controlUrl)
	err = browser.Connect()
	if err != nil {
		l.Kill()
		return nil, err
	}

	s.browser = browser
	s.launcher = l
	return browser, nil
}

func (s *Session) Open(ctx context.Context, url string) (Page, error) {
	browser, err := s.connect()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	page = page.Context(ctx)

	if s.opts.UserAgent != "" {
		err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: s.opts.UserAgent,
		})
		if err != nil {
			page.Close()
			return nil, err
		}
	}

	err = page.Timeout(s.opts.timeout()).Navigate(url)
	if err != nil {
		page.Close()
		return nil, err
	}
	err = page.Timeout(s.opts.timeout()).WaitLoad()
	if err != nil {
		page.Close()
		return nil, err
	}
	return rodPage{page: page}, nil
}

// Close shuts the browser down if it was launched.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

type rodPage struct {
	page *rod.Page
}

func (p rodPage) HTML() (string, error) {
	return p.page.HTML()
}

func (p rodPage) Count(selector string) (int, error) {
	elements, err := p.page.Elements(selector)
	if err != nil {
		return 0, err
	}
	return len(elements), nil
}

func (p rodPage) ScrollToBottom() error {
	_, err := p.page.Eval(`() => {
		window.scrollTo(0, document.body.scrollHeight);
		window.scrollBy(0, 10000);
	}`)
	return err
}

func (p rodPage) Close() error {
	return p.page.Close()
}
