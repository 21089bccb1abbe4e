// Package epoll is the entry point of the debate/poll service SDK.
//
// An API value holds the transport, the resolved settings and the current
// session. It is created once and shared by reference; resource modules are
// obtained from it and bound to the transport and settings current at that
// moment.
//
// # Usage
//
//	api := epoll.New(epoll.WithLogger(logger))
//	api.SetTransport(transport.New(logger))
//	api.LoadConfig(epoll.APIConfig{Hostname: "https://api.example.com", Version: "v1"})
//	api.StartSession("Bearer", token)
//
//	debates, err := api.Debates()
//	if err != nil {
//		log.Fatal(err) // ErrTransportNotConfigured or ErrSettingsNotConfigured
//	}
//	call, err := debates.CreatePoll(debate.CreatePollParams{Title: "T", Content: "C"})
//	if err != nil {
//		log.Fatal(err) // ErrNoActiveSession
//	}
//	resp, err := call.Do(ctx) // transport errors surface here
//
// # Error Handling
//
// Configuration and session errors are returned immediately by the factory or
// operation that detected them:
//
//   - ErrTransportNotConfigured: a module was requested before SetTransport
//   - ErrSettingsNotConfigured: a module was requested before LoadConfig
//   - ErrNoActiveSession: a session-scoped operation ran without a session
//
// Errors produced by the transport are only returned by request.Call.Do and are
// never wrapped or retried.
package epoll
