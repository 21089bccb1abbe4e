package debate

import (
	"net/http"

	"github.com/s0up4200/epoll/request"
)

// Debate operations.
const (
	OpCreatePoll           request.Operation = "debate.createPoll"
	OpListPolls            request.Operation = "debate.listPolls"
	OpGetDebate            request.Operation = "debate.getDebate"
	OpUpdateDebateState    request.Operation = "debate.updateDebateState"
	OpAddPollOption        request.Operation = "debate.addPollOption"
	OpRemovePollOption     request.Operation = "debate.removePollOption"
	OpAddPollAttachment    request.Operation = "debate.addPollAttachment"
	OpRemovePollAttachment request.Operation = "debate.removePollAttachment"
	OpAddPollVote          request.Operation = "debate.addPollVote"
	OpCreateAnnouncement   request.Operation = "debate.createAnnouncement"
	OpListAnnouncements    request.Operation = "debate.listAnnouncements"
)

const (
	segDebate       = "debate"
	segPoll         = "poll"
	segAnnouncement = "anouncement" // spelled as the service routes it
	segOption       = "option"
	segAttachment   = "attachment"
	segVote         = "vote"
	segState        = "state"
)

// endpoints is the default dispatch table. Reads are anonymous, writes on
// polls and announcements are session-scoped. UpdateDebateState is anonymous
// as the service exposes it.
var endpoints = map[request.Operation]request.Endpoint{
	OpCreatePoll:           {Method: http.MethodPost, SessionScoped: true},
	OpListPolls:            {Method: http.MethodGet},
	OpGetDebate:            {Method: http.MethodGet},
	OpUpdateDebateState:    {Method: http.MethodPut},
	OpAddPollOption:        {Method: http.MethodPost, SessionScoped: true},
	OpRemovePollOption:     {Method: http.MethodDelete, SessionScoped: true},
	OpAddPollAttachment:    {Method: http.MethodPost, SessionScoped: true, Upload: true},
	OpRemovePollAttachment: {Method: http.MethodDelete, SessionScoped: true},
	OpAddPollVote:          {Method: http.MethodPost, SessionScoped: true},
	OpCreateAnnouncement:   {Method: http.MethodPost, SessionScoped: true},
	OpListAnnouncements:    {Method: http.MethodGet},
}

// Endpoints returns a copy of the default dispatch table.
func Endpoints() map[request.Operation]request.Endpoint {
	out := make(map[request.Operation]request.Endpoint, len(endpoints))
	for op, ep := range endpoints {
		out[op] = ep
	}
	return out
}
