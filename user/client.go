package user

import (
	"net/http"

	"github.com/s0up4200/epoll/request"
)

// User operations.
const (
	OpRegister     request.Operation = "user.register"
	OpAuthenticate request.Operation = "user.authenticate"
	OpGetMyProfile request.Operation = "user.getMyProfile"
)

var endpoints = map[request.Operation]request.Endpoint{
	OpRegister:     {Method: http.MethodPost},
	OpAuthenticate: {Method: http.MethodPost},
	OpGetMyProfile: {Method: http.MethodGet, SessionScoped: true},
}

// RegisterParams creates a new account from an account-kit code.
type RegisterParams struct {
	GrantType      string  `json:"grantType"`
	ClientID       string  `json:"clientId"`
	ClientSecret   *string `json:"clientSecret,omitempty"`
	State          string  `json:"state"`
	AccountKitCode string  `json:"accountKitCode"`
	Firstname      string  `json:"firstname"`
	Lastname       *string `json:"lastname,omitempty"`
}

// AuthenticateParams exchanges an account-kit code for a token.
type AuthenticateParams struct {
	GrantType      string  `json:"grantType"`
	ClientID       string  `json:"clientId"`
	ClientSecret   *string `json:"clientSecret,omitempty"`
	State          string  `json:"state"`
	AccountKitCode string  `json:"accountKitCode"`
}

// LoginResponse is the token payload returned by Register and Authenticate.
// Decoding into it is optional; the SDK returns the raw response.
type LoginResponse struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	State        string `json:"state,omitempty"`
}

// Client calls the remote User API.
type Client struct {
	builder *request.Builder
}

// New creates a User client bound to transport and settings.
func New(transport request.Transport, settings request.Settings, sessions request.SessionSource, opts ...request.Option) *Client {
	return &Client{
		builder: request.NewBuilder(transport, settings, sessions, endpoints, opts...),
	}
}

// Settings returns the settings the client was created with.
func (c *Client) Settings() request.Settings {
	return c.builder.Settings()
}

// Register registers a new user account.
func (c *Client) Register(p RegisterParams) (*request.Call, error) {
	return c.builder.Build(OpRegister, request.Params{
		Segments: []string{"user", "register"},
		Body:     p,
	})
}

// Authenticate authenticates a user with an account-kit code.
func (c *Client) Authenticate(p AuthenticateParams) (*request.Call, error) {
	return c.builder.Build(OpAuthenticate, request.Params{
		Segments: []string{"user", "oauth"},
		Body:     p,
	})
}

// GetMyProfile fetches the profile of the user owning the active session.
func (c *Client) GetMyProfile() (*request.Call, error) {
	return c.builder.Build(OpGetMyProfile, request.Params{
		Segments: []string{"user", "me"},
	})
}
