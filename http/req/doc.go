/*
Package req provides ergonomics for handling an HTTP request.

A [Request] wraps an *http.Request with what responding to it needs:
which representation the client expects, its locale, the session it belongs to,
and attributes handlers stash for templates to read.

Build one with [New] or [Inject], then retrieve it downstream with [FromContext].
*/
package req
