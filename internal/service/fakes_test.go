package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	slackapi "github.com/slack-go/slack"

	"github.com/F3-Nation/slack-reminders/internal/domain"
	"github.com/F3-Nation/slack-reminders/internal/reminder"
	"github.com/F3-Nation/slack-reminders/internal/slack"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTenants struct {
	backblast []domain.BackblastTenant
	contact   []domain.ContactTenant
	err       error
}

func (f *fakeTenants) BackblastTenants(context.Context) ([]domain.BackblastTenant, error) {
	return f.backblast, f.err
}

func (f *fakeTenants) ContactTenants(context.Context) ([]domain.ContactTenant, error) {
	return f.contact, f.err
}

type sentMessage struct {
	channel  string
	fallback string
	text     string
	blocks   int
	dm       bool
}

type fakeClient struct {
	token     string
	sent      []sentMessage
	postErr   error
	users     []slackapi.User
	listErrs  []error // consumed per call; nil means success
	listCalls int
}

func (c *fakeClient) PostBlocks(_ context.Context, channelID, fallback string, blocks []slackapi.Block) error {
	if c.postErr != nil {
		return c.postErr
	}
	c.sent = append(c.sent, sentMessage{channel: channelID, fallback: fallback, blocks: len(blocks)})
	return nil
}

func (c *fakeClient) PostDirectMessage(_ context.Context, userID, fallback string, blocks []slackapi.Block) error {
	if c.postErr != nil {
		return c.postErr
	}
	c.sent = append(c.sent, sentMessage{channel: userID, fallback: fallback, blocks: len(blocks), dm: true})
	return nil
}

func (c *fakeClient) PostText(_ context.Context, channelID, text string) error {
	if c.postErr != nil {
		return c.postErr
	}
	c.sent = append(c.sent, sentMessage{channel: channelID, text: text})
	return nil
}

func (c *fakeClient) ListUsers(context.Context) ([]slackapi.User, error) {
	call := c.listCalls
	c.listCalls++
	if call < len(c.listErrs) && c.listErrs[call] != nil {
		return nil, c.listErrs[call]
	}
	return c.users, nil
}

// clientRecorder hands out one fake client per bot token, mirroring the
// one-client-per-region contract.
type clientRecorder struct {
	clients map[string]*fakeClient
}

func newClientRecorder() *clientRecorder {
	return &clientRecorder{clients: make(map[string]*fakeClient)}
}

func (r *clientRecorder) factory() slack.Factory {
	return func(botToken string) slack.Client {
		c, ok := r.clients[botToken]
		if !ok {
			c = &fakeClient{token: botToken}
			r.clients[botToken] = c
		}
		return c
	}
}

type fakeStore struct {
	rows         []domain.MissingBackblast
	attendees    map[string]struct{}
	rowsErr      error
	attendeesErr error
	closed       bool
	gotTeamID    string
	gotWindow    reminder.Window
	gotSince     time.Time
}

func (s *fakeStore) MissingBackblasts(_ context.Context, teamID string, w reminder.Window) ([]domain.MissingBackblast, error) {
	s.gotTeamID = teamID
	s.gotWindow = w
	if s.rowsErr != nil {
		return nil, s.rowsErr
	}
	return s.rows, nil
}

func (s *fakeStore) RecentAttendeeIDs(_ context.Context, since time.Time) (map[string]struct{}, error) {
	s.gotSince = since
	if s.attendeesErr != nil {
		return nil, s.attendeesErr
	}
	return s.attendees, nil
}

func (s *fakeStore) Close() error {
	s.closed = true
	return nil
}

type fakeOpener struct {
	stores   map[string]*fakeStore
	openErrs map[string]error
}

func (o *fakeOpener) open(_ context.Context, dbName string) (EventStore, error) {
	if err := o.openErrs[dbName]; err != nil {
		return nil, err
	}
	store, ok := o.stores[dbName]
	if !ok {
		store = &fakeStore{}
		if o.stores == nil {
			o.stores = make(map[string]*fakeStore)
		}
		o.stores[dbName] = store
	}
	return store, nil
}
