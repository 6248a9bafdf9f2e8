/*
Package resp finalizes HTTP responses.

A [Responder] holds application-wide configuration: templates, the root URL, how session state is persisted,
whether success pages and detailed errors are shown.
Calling [Responder.Respond] while handling a request returns that request's [Response].

A Response commits at most once.
Right before it does, session state is persisted, also at most once.
Every write after the commit is logged and otherwise ignored.

Errors are represented according to what the client expects:
JSON clients receive a [RestResult], HTML clients the error page,
and anything else a plain-text 500.

	func handler(w http.ResponseWriter, r *http.Request) {
		rr := responder.Respond(w, r)
		if err := doWork(); err != nil {
			rr.Err(err)
			return
		}

		rr.ForwardToSuccess("Saved!")
	}
*/
package resp
