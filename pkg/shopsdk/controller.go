package shopsdk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds each Authority request unless WithTimeout says
// otherwise.
const DefaultTimeout = 15 * time.Second

// Authority is the server side of the sign-in exchange. *Client satisfies it.
type Authority interface {
	SignIn(ctx context.Context, req SignInRequest) (SignInResponse, error)
}

// Navigator moves the user on once a session is finalized.
type Navigator interface {
	Navigate(path string)
}

// NotificationKind grades a Notification.
type NotificationKind int

const (
	NotifyError NotificationKind = iota
	NotifyInfo
)

// Notification is a transient, dismissible message for the user.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(Notification)
}

// TransitionHook observes every state change. It runs with the controller
// locked and must not call back into it.
type TransitionHook func(from, to State)

type ControllerOption func(*Controller)

// WithSessionStore persists finalized sessions.
func WithSessionStore(s SessionStore) ControllerOption {
	return func(c *Controller) { c.store = s }
}

// WithSessionProvider mirrors finalized sessions into shared app state.
func WithSessionProvider(p SessionProvider) ControllerOption {
	return func(c *Controller) { c.provider = p }
}

func WithNavigator(n Navigator) ControllerOption {
	return func(c *Controller) { c.navigator = n }
}

func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) { c.notifier = n }
}

// WithRedirect sets where to navigate after sign-in. Use RedirectFromURL to
// derive it from the sign-in page URL.
func WithRedirect(path string) ControllerOption {
	return func(c *Controller) { c.redirect = path }
}

// WithTimeout bounds each request to the Authority. Non-positive values keep
// DefaultTimeout. An expired deadline surfaces as a *TransportError.
func WithTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithTransitionHook(h TransitionHook) ControllerOption {
	return func(c *Controller) { c.hook = h }
}

// Credentials are held only while a sign-in is in progress.
type Credentials struct {
	Email    string
	Password string
}

// Controller drives the primary-then-second-factor sign-in exchange. It is
// safe for concurrent use; a submit made while another request is in flight
// is refused with ErrSubmissionInFlight.
type Controller struct {
	authority Authority
	store     SessionStore
	provider  SessionProvider
	navigator Navigator
	notifier  Notifier
	redirect  string
	timeout   time.Duration
	hook      TransitionHook

	mu       sync.Mutex
	state    State
	inFlight bool
	creds    *Credentials
	session  *Session
}

func NewController(authority Authority, opts ...ControllerOption) *Controller {
	c := &Controller{
		authority: authority,
		redirect:  "/",
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitCredentials starts a sign-in. It finalizes straight away for
// accounts without 2FA and opens the challenge otherwise.
func (c *Controller) SubmitCredentials(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if err := c.validate(email, password); err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.transition(evSubmitPrimary); err != nil {
		c.mu.Unlock()
		return err
	}
	c.creds = &Credentials{Email: email, Password: password}
	c.inFlight = true
	c.mu.Unlock()

	res, err := c.call(ctx, SignInRequest{Email: email, Password: password})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err == nil && !res.Require2FA && res.Token == "" {
		err = errors.New("response carried neither a session nor a challenge")
	}
	if err != nil {
		err = classify(StagePrimary, err)
		c.creds = nil
		c.mustTransition(evPrimaryFailed)
		c.notify(NotifyError, err.Error())
		c.mustTransition(evRecover)
		return err
	}

	if res.Require2FA {
		c.mustTransition(evPrimaryChallenge)
		return nil
	}
	return c.finalize(evPrimarySession, res.Session)
}

// SubmitToken answers the open challenge by resending the primary
// credentials with token. A rejected token leaves the challenge open and
// stored sessions untouched.
func (c *Controller) SubmitToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if c.state != StateChallengePending {
		defer c.mu.Unlock()
		_, err := next(c.state, evSubmitToken)
		return err
	}
	if token == "" {
		err := &ValidationError{Field: "token"}
		c.notify(NotifyError, err.Error())
		c.mu.Unlock()
		return err
	}
	c.mustTransition(evSubmitToken)
	creds := *c.creds
	c.inFlight = true
	c.mu.Unlock()

	res, err := c.call(ctx, SignInRequest{
		Email:          creds.Email,
		Password:       creds.Password,
		TwoFactorToken: token,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err == nil && res.Token == "" {
		err = errors.New("response carried no session")
	}
	if err != nil {
		err = classify(StageChallenge, err)
		c.mustTransition(evChallengeRejected)
		c.notify(NotifyError, err.Error())
		return err
	}
	return c.finalize(evChallengeSession, res.Session)
}

// Dismiss abandons the open challenge without contacting the server.
func (c *Controller) Dismiss() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return ErrSubmissionInFlight
	}
	if err := c.transition(evDismiss); err != nil {
		return err
	}
	c.creds = nil
	return nil
}

// Reset returns a finalized controller to Idle so another sign-in can start.
// The stored session is kept.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFinalized {
		return fmt.Errorf("%w: reset on %s", ErrInvalidTransition, c.state)
	}
	return c.transition(evRecover)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ChallengeOpen reports whether the second-factor prompt should be shown.
func (c *Controller) ChallengeOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateChallengePending || c.state == StateAwaitingChallengeResult
}

// Session returns the session finalized by this controller, if any.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Redirect is where the controller navigates after sign-in.
func (c *Controller) Redirect() string { return c.redirect }

func (c *Controller) call(ctx context.Context, req SignInRequest) (SignInResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.authority.SignIn(ctx, req)
}

func (c *Controller) validate(email, password string) error {
	var err error
	switch {
	case email == "":
		err = &ValidationError{Field: "email"}
	case password == "":
		err = &ValidationError{Field: "password"}
	default:
		return nil
	}
	c.notify(NotifyError, err.Error())
	return err
}

// finalize records the session, persists it, mirrors it to the provider
// and navigates. A persistence failure is reported but the sign-in stands.
func (c *Controller) finalize(e event, s Session) error {
	c.mustTransition(e)
	c.creds = nil
	c.session = &s

	var persistErr error
	if c.store != nil {
		if err := c.store.SaveSession(s); err != nil {
			persistErr = fmt.Errorf("persist session: %w", err)
		} else if err := c.store.SaveTwoFactorPreference(s.TwoFactorEnabled); err != nil {
			persistErr = fmt.Errorf("persist two-factor preference: %w", err)
		}
		if persistErr != nil {
			c.notify(NotifyError, persistErr.Error())
		}
	}
	if c.provider != nil {
		c.provider.Set(s)
	}
	if c.navigator != nil {
		c.navigator.Navigate(c.redirect)
	}
	return persistErr
}

func (c *Controller) transition(e event) error {
	to, err := next(c.state, e)
	if err != nil {
		return err
	}
	from := c.state
	c.state = to
	if c.hook != nil {
		c.hook(from, to)
	}
	return nil
}

// mustTransition is for moves the controller's own bookkeeping guarantees.
func (c *Controller) mustTransition(e event) {
	if err := c.transition(e); err != nil {
		panic(err)
	}
}

func (c *Controller) notify(kind NotificationKind, msg string) {
	if c.notifier != nil {
		c.notifier.Notify(Notification{Kind: kind, Message: msg})
	}
}
