package debate

import (
	"github.com/s0up4200/epoll/request"
)

// Client calls the remote Debate API.
type Client struct {
	builder *request.Builder
}

// New creates a Debate client bound to transport and settings. Session-scoped
// operations resolve their credentials from sessions on every call.
func New(transport request.Transport, settings request.Settings, sessions request.SessionSource, opts ...request.Option) *Client {
	return &Client{
		builder: request.NewBuilder(transport, settings, sessions, endpoints, opts...),
	}
}

// Settings returns the settings the client was created with.
func (c *Client) Settings() request.Settings {
	return c.builder.Settings()
}

// CreatePoll creates a new poll.
func (c *Client) CreatePoll(p CreatePollParams) (*request.Call, error) {
	return c.builder.Build(OpCreatePoll, request.Params{
		Segments: []string{segDebate, segPoll},
		Body:     p,
	})
}

// ListPolls lists existing polls.
func (c *Client) ListPolls(p ListParams) (*request.Call, error) {
	return c.builder.Build(OpListPolls, request.Params{
		Segments: []string{segDebate, segPoll},
		Query:    p.query(),
	})
}

// GetDebate fetches a debate of any kind by id.
func (c *Client) GetDebate(id string) (*request.Call, error) {
	return c.builder.Build(OpGetDebate, request.Params{
		Segments: []string{segDebate, id},
	})
}

// UpdateDebateState changes the lifecycle state of a debate.
func (c *Client) UpdateDebateState(p UpdateStateParams) (*request.Call, error) {
	return c.builder.Build(OpUpdateDebateState, request.Params{
		Segments: []string{segDebate, p.DebateID, segState},
		Body:     p,
	})
}

// AddPollOption adds a new option to a poll.
func (c *Client) AddPollOption(p AddPollOptionParams) (*request.Call, error) {
	return c.builder.Build(OpAddPollOption, request.Params{
		Segments: []string{segDebate, segPoll, p.PollID, segOption},
		Body:     p,
	})
}

// RemovePollOption removes an option from a poll.
func (c *Client) RemovePollOption(pollID, optionID string) (*request.Call, error) {
	return c.builder.Build(OpRemovePollOption, request.Params{
		Segments: []string{segDebate, segPoll, pollID, segOption, optionID},
	})
}

// AddPollAttachment uploads form as a new attachment of a poll. The form is
// handed to the transport unchanged.
func (c *Client) AddPollAttachment(pollID string, form *request.FormData) (*request.Call, error) {
	return c.builder.Build(OpAddPollAttachment, request.Params{
		Segments: []string{segDebate, segPoll, pollID, segAttachment},
		Body:     form,
	})
}

// RemovePollAttachment removes an attachment from a poll.
func (c *Client) RemovePollAttachment(pollID, attachmentID string) (*request.Call, error) {
	return c.builder.Build(OpRemovePollAttachment, request.Params{
		Segments: []string{segDebate, segPoll, pollID, segAttachment, attachmentID},
	})
}

// AddPollVote votes for an option of a poll.
func (c *Client) AddPollVote(p AddPollVoteParams) (*request.Call, error) {
	return c.builder.Build(OpAddPollVote, request.Params{
		Segments: []string{segDebate, segPoll, p.PollID, segVote},
		Body:     p,
	})
}

// CreateAnnouncement creates a new announcement.
func (c *Client) CreateAnnouncement(p CreateAnnouncementParams) (*request.Call, error) {
	return c.builder.Build(OpCreateAnnouncement, request.Params{
		Segments: []string{segDebate, segAnnouncement},
		Body:     p,
	})
}

// ListAnnouncements lists existing announcements.
func (c *Client) ListAnnouncements(p ListParams) (*request.Call, error) {
	return c.builder.Build(OpListAnnouncements, request.Params{
		Segments: []string{segDebate, segAnnouncement},
		Query:    p.query(),
	})
}
