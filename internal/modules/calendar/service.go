package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agencydesk/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Config carries the Google OAuth2 application credentials. An empty
// ClientID disables the integration; every operation then reports
// ErrNotConfigured and the booking core keeps working without sync.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (c Config) Enabled() bool { return c.ClientID != "" && c.ClientSecret != "" }

// TokenRepository persists per-host OAuth tokens.
type TokenRepository interface {
	GetByHost(ctx context.Context, hostID int64) (*domain.CalendarToken, error)
	Save(ctx context.Context, t *domain.CalendarToken) error
	DeleteByHost(ctx context.Context, hostID int64) error
}

// EventIDStore writes the external event key back onto the booking.
type EventIDStore interface {
	SetGoogleEventID(ctx context.Context, id int64, eventID string) error
}

type Service struct {
	oauth    *oauth2.Config
	tokens   TokenRepository
	bookings EventIDStore

	mu     sync.Mutex
	states map[string]pendingState
}

type pendingState struct {
	hostID  int64
	expires time.Time
}

func NewService(cfg Config, tokens TokenRepository, bookings EventIDStore) *Service {
	s := &Service{
		tokens:   tokens,
		bookings: bookings,
		states:   make(map[string]pendingState),
	}
	if cfg.Enabled() {
		s.oauth = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				gcal.CalendarEventsScope,
				gcal.CalendarReadonlyScope,
			},
			Endpoint: google.Endpoint,
		}
	}
	return s
}

// ConnectURL starts the OAuth flow for a host. The state token is single-use
// and expires after ten minutes.
func (s *Service) ConnectURL(hostID int64) (*ConnectResponse, error) {
	if s.oauth == nil {
		return nil, ErrNotConfigured
	}

	state := uuid.NewString()
	s.mu.Lock()
	s.states[state] = pendingState{hostID: hostID, expires: time.Now().Add(10 * time.Minute)}
	s.mu.Unlock()

	return &ConnectResponse{
		AuthURL: s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce),
		State:   state,
	}, nil
}

// HandleCallback exchanges the authorization code and stores the token with
// the connected account's email.
func (s *Service) HandleCallback(ctx context.Context, state, code string) error {
	if s.oauth == nil {
		return ErrNotConfigured
	}

	s.mu.Lock()
	pending, ok := s.states[state]
	delete(s.states, state)
	s.mu.Unlock()
	if !ok || time.Now().After(pending.expires) {
		return ErrBadState
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	email := ""
	if srv, err := s.calendarClient(ctx, token); err == nil {
		// the primary calendar's id is the account email
		if cal, err := srv.CalendarList.Get("primary").Do(); err == nil {
			email = cal.Id
		}
	}

	return s.tokens.Save(ctx, &domain.CalendarToken{
		HostID:       pending.hostID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		AccountEmail: email,
	})
}

func (s *Service) Status(ctx context.Context, hostID int64) (*StatusResponse, error) {
	t, err := s.tokens.GetByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return &StatusResponse{Connected: false}, nil
	}
	return &StatusResponse{
		Connected: true,
		Expired:   t.Expired(time.Now()),
		Email:     t.AccountEmail,
	}, nil
}

func (s *Service) Disconnect(ctx context.Context, hostID int64) error {
	return s.tokens.DeleteByHost(ctx, hostID)
}

// BookingUpserted mirrors an occupying booking to the host's primary
// calendar. Hosts without a connection are skipped silently.
func (s *Service) BookingUpserted(ctx context.Context, b *domain.Booking) error {
	srv, ok, err := s.clientForHost(ctx, b.HostID)
	if err != nil || !ok {
		return err
	}

	event := buildEvent(b)
	if b.GoogleEventID == "" {
		created, err := srv.Events.Insert("primary", event).Do()
		if err != nil {
			return fmt.Errorf("insert calendar event: %w", err)
		}
		return s.bookings.SetGoogleEventID(ctx, b.ID, created.Id)
	}

	if _, err := srv.Events.Patch("primary", b.GoogleEventID, event).Do(); err != nil {
		return fmt.Errorf("patch calendar event %s: %w", b.GoogleEventID, err)
	}
	return nil
}

// BookingRemoved deletes the mirrored event after a cancellation.
func (s *Service) BookingRemoved(ctx context.Context, b *domain.Booking) error {
	if b.GoogleEventID == "" {
		return nil
	}
	srv, ok, err := s.clientForHost(ctx, b.HostID)
	if err != nil || !ok {
		return err
	}
	if err := srv.Events.Delete("primary", b.GoogleEventID).Do(); err != nil {
		return fmt.Errorf("delete calendar event %s: %w", b.GoogleEventID, err)
	}
	return nil
}

func (s *Service) clientForHost(ctx context.Context, hostID int64) (*gcal.Service, bool, error) {
	if s.oauth == nil {
		return nil, false, nil
	}
	t, err := s.tokens.GetByHost(ctx, hostID)
	if err != nil {
		return nil, false, err
	}
	if t == nil {
		return nil, false, nil
	}

	srv, err := s.calendarClient(ctx, &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	})
	if err != nil {
		return nil, false, err
	}
	return srv, true, nil
}

func (s *Service) calendarClient(ctx context.Context, token *oauth2.Token) (*gcal.Service, error) {
	client := s.oauth.Client(ctx, token)
	return gcal.NewService(ctx, option.WithHTTPClient(client))
}

func buildEvent(b *domain.Booking) *gcal.Event {
	event := &gcal.Event{
		Summary:     b.Title,
		Description: b.Description,
		Location:    b.Location,
		Start:       &gcal.EventDateTime{DateTime: b.StartTime.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: b.EndTime.Format(time.RFC3339)},
	}
	for _, a := range b.Attendees {
		event.Attendees = append(event.Attendees, &gcal.EventAttendee{
			DisplayName: a.Name,
			Email:       a.Email,
		})
	}
	return event
}
