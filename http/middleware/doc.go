/*
The middleware package defines what a middleware is in dispatch and a set of basic middlewares.

The available middlewares are:
- CORS
- CurrentUser
- ForceHTTPS
- InjectIPAddress
- InjectRequest
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID
- TrackCommits

Order matters.
TrackCommits comes first so every *resp.Response shares one record of whether the response committed.
InjectSession precedes CurrentUser and InjectRequest, both of which read the session.
ranger assembles the following chain, which can be copy-pasted when not using ranger:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.TrackCommits(),
		middleware.ReportPanic(env),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore, beanStore),
		middleware.CurrentUser(responder, userStore),
		middleware.InjectRequest(),
	}
*/
package middleware
