package debate

import "github.com/s0up4200/epoll/request"

// State is a debate lifecycle state as numbered by the service.
type State int

// CreatePollParams is the body of a new poll.
type CreatePollParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateAnnouncementParams is the body of a new announcement.
type CreateAnnouncementParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// StateRange restricts listings to debates whose state lies in [From, To].
type StateRange struct {
	From State
	To   State
}

// ListParams filters poll and announcement listings. Nil fields are not sent.
type ListParams struct {
	Limit  *int
	FromID *string
	State  *StateRange
}

// listQuery is the wire form of ListParams.
type listQuery struct {
	Limit     *int    `url:"limit,omitempty"`
	FromID    *string `url:"fromId,omitempty"`
	StateFrom *int    `url:"stateFrom,omitempty"`
	StateTo   *int    `url:"stateTo,omitempty"`
}

func (p ListParams) query() listQuery {
	q := listQuery{
		Limit:  p.Limit,
		FromID: p.FromID,
	}
	if p.State != nil {
		q.StateFrom = request.Ptr(int(p.State.From))
		q.StateTo = request.Ptr(int(p.State.To))
	}
	return q
}

// UpdateStateParams moves a debate to a new state.
type UpdateStateParams struct {
	DebateID string `json:"-"`
	State    State  `json:"state"`
}

// AddPollOptionParams proposes a new option on a poll.
type AddPollOptionParams struct {
	PollID string `json:"-"`
	Reason string `json:"reason"`
}

// AddPollVoteParams casts a vote for an option.
type AddPollVoteParams struct {
	PollID   string `json:"-"`
	OptionID string `json:"optionId"`
}
