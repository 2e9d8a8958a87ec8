// Package browser drives a Chrome instance for the community actions the
// public API has no endpoint for: upvoting, posting to discussions,
// following users, and filling in the profile. It attaches to an already
// signed-in Chrome over the DevTools protocol when a debugger URL is given;
// a freshly launched instance has no Kaggle session and these actions will
// fail against pages that require login.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Config holds the driver settings.
type Config struct {
	// DebuggerURL attaches to a running Chrome instead of launching one.
	DebuggerURL string

	Headless          bool
	NavigationTimeout time.Duration
}

// Driver owns one browser connection.
type Driver struct {
	cfg     Config
	logger  *zap.Logger
	browser *rod.Browser
}

// NewDriver creates a driver; Connect must be called before any action.
func NewDriver(cfg Config, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 30 * time.Second
	}
	return &Driver{cfg: cfg, logger: logger}
}

// Connect attaches to the configured debugger URL, or launches a fresh
// Chrome when none is set.
func (d *Driver) Connect(ctx context.Context) error {
	if d.browser != nil {
		if _, err := d.browser.Version(); err == nil {
			return nil
		}
		_ = d.browser.Close()
		d.browser = nil
	}

	controlURL := d.cfg.DebuggerURL
	if controlURL == "" {
		url, err := launcher.New().Headless(d.cfg.Headless).Launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = url
		d.logger.Warn("launched a fresh browser; it has no signed-in session")
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	d.browser = browser
	d.logger.Info("browser connected", zap.String("control_url", controlURL))
	return nil
}

// Close shuts the browser connection down.
func (d *Driver) Close() error {
	if d.browser == nil {
		return nil
	}
	err := d.browser.Close()
	d.browser = nil
	return err
}

// open navigates a fresh page and waits for it to settle.
func (d *Driver) open(url string) (*rod.Page, error) {
	if d.browser == nil {
		return nil, fmt.Errorf("browser not connected")
	}
	page, err := d.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	page = page.Timeout(d.cfg.NavigationTimeout)
	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return page, nil
}

// click finds the first element matching any of the selectors and clicks it.
func click(page *rod.Page, selectors ...string) error {
	var lastErr error
	for _, sel := range selectors {
		el, err := page.Element(sel)
		if err != nil {
			lastErr = err
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("no clickable element among %v: %w", selectors, lastErr)
}

// Upvote opens a notebook or dataset page and presses its upvote button.
// Already-upvoted pages are fine; pressing again is rejected client-side and
// the vote stays.
func (d *Driver) Upvote(url string) error {
	page, err := d.open(url)
	if err != nil {
		return err
	}
	defer page.Close()

	if err := click(page,
		`button[aria-label="Upvote"]`,
		`button[data-testid="upvotebutton__upvote"]`,
	); err != nil {
		return fmt.Errorf("upvote %s: %w", url, err)
	}
	// Give the vote request time to land before the page closes.
	time.Sleep(2 * time.Second)
	d.logger.Info("upvoted", zap.String("url", url))
	return nil
}

// Follow opens a user profile and presses the follow button.
func (d *Driver) Follow(profileURL string) error {
	page, err := d.open(profileURL)
	if err != nil {
		return err
	}
	defer page.Close()

	if err := click(page,
		`button[aria-label="Follow User"]`,
		`button[data-testid="follow-button"]`,
	); err != nil {
		return fmt.Errorf("follow %s: %w", profileURL, err)
	}
	time.Sleep(2 * time.Second)
	d.logger.Info("followed", zap.String("url", profileURL))
	return nil
}

// PostDiscussion opens a forum's new-topic form and submits a post.
func (d *Driver) PostDiscussion(forumURL, title, body string) error {
	page, err := d.open(forumURL)
	if err != nil {
		return err
	}
	defer page.Close()

	if err := click(page, `a[href$="/new"]`, `button[aria-label="New Topic"]`); err != nil {
		return fmt.Errorf("open new topic form at %s: %w", forumURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("load topic form: %w", err)
	}

	titleEl, err := page.Element(`input[name="title"]`)
	if err != nil {
		return fmt.Errorf("find title field: %w", err)
	}
	if err := titleEl.Input(title); err != nil {
		return fmt.Errorf("type title: %w", err)
	}
	bodyEl, err := page.Element(`textarea, div[contenteditable="true"]`)
	if err != nil {
		return fmt.Errorf("find body field: %w", err)
	}
	if err := bodyEl.Input(body); err != nil {
		return fmt.Errorf("type body: %w", err)
	}
	if err := click(page, `button[type="submit"]`); err != nil {
		return fmt.Errorf("submit topic: %w", err)
	}
	time.Sleep(2 * time.Second)
	d.logger.Info("posted discussion", zap.String("forum", forumURL), zap.String("title", title))
	return nil
}

// ProfileFields is the subset of the account profile the collector fills.
type ProfileFields struct {
	Occupation   string
	Organization string
	Location     string
	Bio          string
}

// CompleteProfile opens the profile editor and fills any empty fields.
func (d *Driver) CompleteProfile(editURL string, fields ProfileFields) error {
	page, err := d.open(editURL)
	if err != nil {
		return err
	}
	defer page.Close()

	fill := func(selector, value string) error {
		if value == "" {
			return nil
		}
		el, err := page.Element(selector)
		if err != nil {
			return fmt.Errorf("find %s: %w", selector, err)
		}
		existing, err := el.Text()
		if err == nil && existing != "" {
			return nil
		}
		return el.Input(value)
	}

	if err := fill(`input[name="occupation"]`, fields.Occupation); err != nil {
		return err
	}
	if err := fill(`input[name="organization"]`, fields.Organization); err != nil {
		return err
	}
	if err := fill(`input[name="city"]`, fields.Location); err != nil {
		return err
	}
	if err := fill(`textarea[name="bio"]`, fields.Bio); err != nil {
		return err
	}
	if err := click(page, `button[type="submit"]`); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	time.Sleep(2 * time.Second)
	d.logger.Info("profile updated")
	return nil
}
