/*
Package template parses HTML templates out of an fs.FS.

Templates not found in the provided filesystem fall back to those embedded in this package,
tmpl/error.tmpl and tmpl/success.tmpl, so an application renders error and success pages
without shipping its own.

Every parsed template can call these functions:

	nonce       a fresh UUID, for Content-Security-Policy nonces
	rootUrl     the application's root URL
	env         the environment the application runs in
	currentUser the user of the session being served, or nil
	currentURL  the URL being served, without its query
*/
package template
