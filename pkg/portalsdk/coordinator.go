package portalsdk

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Event names emitted by the Coordinator.
const (
	EventSignedIn       = "signed_in"
	EventSignedOut      = "signed_out"
	EventSessionExpired = "session_expired"
	EventProfileLoaded  = "profile_loaded"
)

// Event is a state change notification from the Coordinator.
type Event struct {
	Name    string
	Profile *Profile // set on signed_in and profile_loaded
}

// monitorInterval is how often the Coordinator probes the server-side
// session. Kept short enough that an admin revocation is noticed before the
// member takes further action.
const monitorInterval = 5 * time.Minute

// profileRetryDelay is the pause before the single retry of the initial
// profile load. A freshly approved account can race its own profile row.
const profileRetryDelay = 1 * time.Second

// Coordinator owns the client-side session state: tokens, the loaded
// profile, background liveness monitoring, and restore across restarts.
// It is safe for concurrent use.
type Coordinator struct {
	client *SDKClient
	store  TokenStore

	// MonitorInterval overrides how often StartMonitor probes the session.
	// Zero means the default of five minutes.
	MonitorInterval time.Duration

	mu      sync.RWMutex
	session *Session
	profile *Profile

	events chan Event

	monitorStop chan struct{}
	monitorDone chan struct{}
}

// NewCoordinator creates a Coordinator. The TokenStore may be nil, in which
// case sessions are not persisted across restarts.
func NewCoordinator(client *SDKClient, store TokenStore) *Coordinator {
	return &Coordinator{
		client: client,
		store:  store,
		events: make(chan Event, 16),
	}
}

// Events returns the channel the Coordinator publishes state changes on.
// Events are dropped if the channel is full, so consumers treat them as
// hints and re-read state through the accessors.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// Login authenticates, loads the profile, and persists the tokens.
func (c *Coordinator) Login(ctx context.Context, email, password string) error {
	session, err := c.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	profile, err := loadProfileWithRetry(ctx, session)
	if err != nil {
		_ = session.Logout(ctx)
		return fmt.Errorf("login succeeded but profile load failed: %w", err)
	}

	c.mu.Lock()
	c.session = session
	c.profile = profile
	c.mu.Unlock()

	c.persist(session)
	c.emit(Event{Name: EventSignedIn, Profile: profile})
	return nil
}

// Restore rebuilds the session from the TokenStore. Returns false with a
// nil error when no stored tokens exist.
func (c *Coordinator) Restore(ctx context.Context) (bool, error) {
	if c.store == nil {
		return false, nil
	}

	stored, ok, err := c.store.Load()
	if err != nil {
		return false, err
	}
	if !ok || stored.RefreshToken == "" {
		return false, nil
	}

	session := c.client.NewSessionFromTokens(
		stored.AccessToken, stored.RefreshToken, stored.SessionID, stored.ExpiresIn)

	// A dead session surfaces here, not as a silent broken state later.
	alive, err := session.CheckAlive(ctx)
	if err != nil || !alive {
		_ = c.store.Clear()
		if err != nil {
			return false, err
		}
		return false, nil
	}

	profile, err := loadProfileWithRetry(ctx, session)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.session = session
	c.profile = profile
	c.mu.Unlock()

	c.persist(session)
	c.emit(Event{Name: EventSignedIn, Profile: profile})
	return true, nil
}

// Logout revokes the session, clears stored tokens, and resets state. Local
// state is cleared even when the server call fails.
func (c *Coordinator) Logout(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.session = nil
	c.profile = nil
	c.mu.Unlock()

	if c.store != nil {
		_ = c.store.Clear()
	}

	var err error
	if session != nil {
		err = session.Logout(ctx)
	}

	c.emit(Event{Name: EventSignedOut})
	return err
}

// ReloadProfile re-reads the caller's profile, picking up role or committee
// changes made by an admin.
func (c *Coordinator) ReloadProfile(ctx context.Context) (*Profile, error) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	if session == nil {
		return nil, fmt.Errorf("not signed in")
	}

	profile, err := session.GetMyProfile(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.profile = profile
	c.mu.Unlock()

	c.emit(Event{Name: EventProfileLoaded, Profile: profile})
	return profile, nil
}

// Refresh rotates the token pair now and persists the new tokens. The
// session also refreshes lazily on use, so this is only needed when a caller
// wants fresh tokens ahead of time.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	if session == nil {
		return fmt.Errorf("not signed in")
	}

	if err := session.Refresh(ctx); err != nil {
		return err
	}
	c.persist(session)
	return nil
}

// StartMonitor launches the background liveness loop. When the server
// reports the session dead, the Coordinator clears its state and emits
// session_expired. Call StopMonitor to halt the loop.
func (c *Coordinator) StartMonitor() {
	c.mu.Lock()
	if c.monitorStop != nil {
		c.mu.Unlock()
		return
	}
	c.monitorStop = make(chan struct{})
	c.monitorDone = make(chan struct{})
	stop, done := c.monitorStop, c.monitorDone
	c.mu.Unlock()

	interval := c.MonitorInterval
	if interval <= 0 {
		interval = monitorInterval
	}

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.probe()
			case <-stop:
				return
			}
		}
	}()
}

// StopMonitor halts the liveness loop and waits for it to exit.
func (c *Coordinator) StopMonitor() {
	c.mu.Lock()
	stop, done := c.monitorStop, c.monitorDone
	c.monitorStop = nil
	c.monitorDone = nil
	c.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

func (c *Coordinator) probe() {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	if session == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	alive, err := session.CheckAlive(ctx)
	if err != nil {
		// Network trouble is not a revocation; keep the session and try
		// again next tick.
		return
	}
	if alive {
		return
	}

	c.mu.Lock()
	c.session = nil
	c.profile = nil
	c.mu.Unlock()

	if c.store != nil {
		_ = c.store.Clear()
	}
	c.emit(Event{Name: EventSessionExpired})
}

// Session returns the current session, or nil when signed out.
func (c *Coordinator) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Profile returns the loaded profile, or nil when signed out.
func (c *Coordinator) Profile() *Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile
}

// IsLoggedIn reports whether a session is held.
func (c *Coordinator) IsLoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil
}

// IsAdmin reports whether the signed-in member has the admin role.
func (c *Coordinator) IsAdmin() bool {
	return c.Role() == "admin"
}

// IsCommittee reports whether the signed-in member holds committee powers.
// Admins count, since the admin role supersets committee.
func (c *Coordinator) IsCommittee() bool {
	role := c.Role()
	return role == "committee" || role == "admin"
}

// IsResident reports whether the signed-in member has the resident role.
func (c *Coordinator) IsResident() bool {
	return c.Role() == "resident"
}

// CanEditCommittee reports whether the signed-in member may edit content for
// the given committee. Admins always can; committee members only for
// committees they belong to.
func (c *Coordinator) CanEditCommittee(committee string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.profile == nil {
		return false
	}
	if c.profile.Role == "admin" {
		return true
	}
	if c.profile.Role != "committee" {
		return false
	}
	for _, code := range c.profile.Committees {
		if code == committee {
			return true
		}
	}
	return false
}

// Role returns the signed-in member's role, or the empty string when no
// profile is loaded.
func (c *Coordinator) Role() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return ""
	}
	return c.profile.Role
}

func (c *Coordinator) persist(session *Session) {
	if c.store == nil {
		return
	}
	expiresIn := int(time.Until(session.ExpiresAt()).Seconds())
	_ = c.store.Save(StoredTokens{
		AccessToken:  session.AccessToken(),
		RefreshToken: session.RefreshToken(),
		SessionID:    session.SessionID(),
		ExpiresIn:    expiresIn,
	})
}

func (c *Coordinator) emit(e Event) {
	select {
	case c.events <- e:
	default:
	}
}

// loadProfileWithRetry loads the caller's profile with a single retry. The
// profile row for a freshly approved account is written best-effort after
// the user row, so the first read can miss it.
func loadProfileWithRetry(ctx context.Context, session *Session) (*Profile, error) {
	profile, err := session.GetMyProfile(ctx)
	if err == nil {
		return profile, nil
	}

	select {
	case <-time.After(profileRetryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return session.GetMyProfile(ctx)
}
