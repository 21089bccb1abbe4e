// Package debate provides the Debate resource module: polls, announcements and
// the options, attachments and votes attached to a poll.
//
// Every method prepares exactly one request and returns a lazy *request.Call.
// Session-scoped methods read the active session when they are invoked and fail
// with request.ErrNoActiveSession if there is none.
//
//	debates, err := api.Debates()
//	if err != nil {
//		return err
//	}
//	call, err := debates.CreatePoll(debate.CreatePollParams{Title: "Lunch", Content: "Where?"})
//	if err != nil {
//		return err // no session, nothing was sent
//	}
//	resp, err := call.Do(ctx)
package debate
