package epoll

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/epoll/debate"
	"github.com/s0up4200/epoll/request"
	"github.com/s0up4200/epoll/request/requesttest"
	"github.com/s0up4200/epoll/user"
)

func configuredAPI(t *testing.T, opts ...Option) (*API, *requesttest.Recorder) {
	t.Helper()
	rec := requesttest.New()
	api := New(opts...)
	api.SetTransport(rec)
	api.LoadConfig(APIConfig{Hostname: "https://api.example.com", Version: "v1"})
	return api, rec
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		hostname string
		version  string
		expected string
	}{
		{"https://api.example.com", "v1", "https://api.example.com/api/v1"},
		{"http://localhost:8080", "2", "http://localhost:8080/api/2"},
		{"http://host/", "v1", "http://host//api/v1"},
		{"", "", "/api/"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			api := New()
			api.LoadConfig(APIConfig{Hostname: tt.hostname, Version: tt.version})

			settings, err := api.Settings()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, settings.APIBaseURL)
		})
	}
}

func TestLoadConfigOverwritesAndKeepsSession(t *testing.T) {
	api := New()
	api.StartSession("Bearer", "abc")
	api.LoadConfig(APIConfig{Hostname: "http://a", Version: "v1"})
	api.LoadConfig(APIConfig{Hostname: "http://b", Version: "v2"})

	settings, err := api.Settings()
	require.NoError(t, err)
	assert.Equal(t, "http://b/api/v2", settings.APIBaseURL)
	assert.True(t, api.HasSession())
}

func TestSettingsNotLoaded(t *testing.T) {
	_, err := New().Settings()
	assert.ErrorIs(t, err, ErrSettingsNotConfigured)
}

func TestModuleFactoriesRequireConfiguration(t *testing.T) {
	factories := map[string]func(api *API) (any, error){
		"users":   func(api *API) (any, error) { return api.Users() },
		"debates": func(api *API) (any, error) { return api.Debates() },
	}

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			api := New()
			assert.False(t, api.Configured())

			module, err := factory(api)
			assert.ErrorIs(t, err, ErrTransportNotConfigured)
			assert.Nil(t, module)

			// settings alone are not enough either
			api.LoadConfig(APIConfig{Hostname: "http://h", Version: "v1"})
			_, err = factory(api)
			assert.ErrorIs(t, err, ErrTransportNotConfigured)

			api = New()
			api.SetTransport(requesttest.New())
			_, err = factory(api)
			assert.ErrorIs(t, err, ErrSettingsNotConfigured)

			api.LoadConfig(APIConfig{Hostname: "http://h", Version: "v1"})
			assert.True(t, api.Configured())
			module, err = factory(api)
			require.NoError(t, err)
			assert.NotNil(t, module)
		})
	}
}

func TestConfigurationOrderDoesNotMatter(t *testing.T) {
	api := New()
	api.LoadConfig(APIConfig{Hostname: "http://h", Version: "v1"})
	api.SetTransport(requesttest.New())

	_, err := api.Debates()
	require.NoError(t, err)
	_, err = api.Users()
	require.NoError(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	api := New()

	_, err := api.ActiveSession()
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.ErrorIs(t, err, request.ErrNoActiveSession)

	api.StartSession("Bearer", "one")
	session, err := api.ActiveSession()
	require.NoError(t, err)
	assert.Equal(t, Session{TokenType: "Bearer", Token: "one"}, session)

	api.StartSession("JWT", "two")
	session, err = api.ActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "JWT two", session.Authorization())

	api.EndSession()
	_, err = api.ActiveSession()
	assert.ErrorIs(t, err, ErrNoActiveSession)

	// idempotent
	api.EndSession()
	assert.False(t, api.HasSession())
}

func TestEndSessionBlocksScopedOperations(t *testing.T) {
	api, rec := configuredAPI(t)
	api.StartSession("Bearer", "abc123")

	debates, err := api.Debates()
	require.NoError(t, err)
	users, err := api.Users()
	require.NoError(t, err)

	api.EndSession()

	_, err = debates.CreatePoll(debate.CreatePollParams{Title: "T", Content: "C"})
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = debates.AddPollVote(debate.AddPollVoteParams{PollID: "p", OptionID: "o"})
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = users.GetMyProfile()
	assert.ErrorIs(t, err, ErrNoActiveSession)

	assert.Equal(t, 0, rec.Calls())
}

func TestSessionStartedAfterModuleConstruction(t *testing.T) {
	api, rec := configuredAPI(t)

	debates, err := api.Debates()
	require.NoError(t, err)

	api.StartSession("Bearer", "late")
	call, err := debates.CreatePoll(debate.CreatePollParams{Title: "T"})
	require.NoError(t, err)
	_, err = call.Do(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer late", rec.Last().Options.Header("Authorization"))
}

func TestCreatePollEndToEnd(t *testing.T) {
	mockClient := requesttest.New()
	api := New()
	api.SetTransport(mockClient)
	api.LoadConfig(APIConfig{Hostname: "https://api.example.com", Version: "v1"})
	api.StartSession("Bearer", "abc123")

	debates, err := api.Debates()
	require.NoError(t, err)

	call, err := debates.CreatePoll(debate.CreatePollParams{Title: "T", Content: "C"})
	require.NoError(t, err)
	_, err = call.Do(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, mockClient.Calls())
	got := mockClient.Last()
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "https://api.example.com/api/v1/debate/poll", got.URL)
	assert.Equal(t, map[string]string{"Authorization": "Bearer abc123"}, got.Options.Headers)

	body, err := json.Marshal(got.Options.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"T","content":"C"}`, string(body))
}

func TestListPollsEndToEnd(t *testing.T) {
	api, rec := configuredAPI(t)

	debates, err := api.Debates()
	require.NoError(t, err)

	call, err := debates.ListPolls(debate.ListParams{
		Limit:  Ptr(10),
		FromID: Ptr("p1"),
		State:  &debate.StateRange{From: 0, To: 1},
	})
	require.NoError(t, err, "listing is anonymous")
	_, err = call.Do(context.Background())
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"limit":     {"10"},
		"fromId":    {"p1"},
		"stateFrom": {"0"},
		"stateTo":   {"1"},
	}, rec.Last().Options.Params)
}

func TestModulesKeepSettingsBoundAtConstruction(t *testing.T) {
	api, rec := configuredAPI(t)

	before, err := api.Debates()
	require.NoError(t, err)

	api.LoadConfig(APIConfig{Hostname: "https://other.example.com", Version: "v2"})
	after, err := api.Debates()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api/v1", before.Settings().APIBaseURL)
	assert.Equal(t, "https://other.example.com/api/v2", after.Settings().APIBaseURL)

	call, err := before.GetDebate("d1")
	require.NoError(t, err)
	_, err = call.Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api/v1/debate/d1", rec.Last().URL)
}

func TestModulesKeepTransportBoundAtConstruction(t *testing.T) {
	api, first := configuredAPI(t)

	users, err := api.Users()
	require.NoError(t, err)

	second := requesttest.New()
	api.SetTransport(second)

	call, err := users.Register(user.RegisterParams{GrantType: "g", ClientID: "c"})
	require.NoError(t, err)
	_, err = call.Do(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Calls())
	assert.Equal(t, 0, second.Calls())
}

func TestWithSessionScope(t *testing.T) {
	api, rec := configuredAPI(t,
		WithSessionScope(debate.OpListPolls, true),
		WithSessionScope(debate.OpCreatePoll, false),
	)

	debates, err := api.Debates()
	require.NoError(t, err)

	_, err = debates.ListPolls(debate.ListParams{})
	assert.ErrorIs(t, err, ErrNoActiveSession)

	call, err := debates.CreatePoll(debate.CreatePollParams{Title: "T"})
	require.NoError(t, err)
	assert.Empty(t, call.Options().Headers)

	api.StartSession("Bearer", "x")
	call, err = debates.ListPolls(debate.ListParams{})
	require.NoError(t, err)
	_, err = call.Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer x", rec.Last().Options.Header("Authorization"))
}

func TestTransportErrorsAreDeferred(t *testing.T) {
	api, rec := configuredAPI(t)
	boom := errors.New("502 bad gateway")
	rec.Err = boom

	debates, err := api.Debates()
	require.NoError(t, err)

	call, err := debates.GetDebate("d1")
	require.NoError(t, err)

	_, err = call.Do(context.Background())
	assert.Same(t, boom, err)
	assert.Equal(t, 1, rec.Calls())
}

func TestConcurrentSessionChanges(t *testing.T) {
	api, _ := configuredAPI(t)
	debates, err := api.Debates()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			api.StartSession("Bearer", "t")
		}()
		go func() {
			defer wg.Done()
			api.EndSession()
			_, _ = debates.CreatePoll(debate.CreatePollParams{})
		}()
	}
	wg.Wait()

	api.StartSession("Bearer", "final")
	session, err := api.ActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "final", session.Token)
}
