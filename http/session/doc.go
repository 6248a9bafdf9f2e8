/*
Package session wraps gorilla sessions for a dispatch app.

Beyond storing values, a Session carries the state the response layer relies on:
a stable ID, a request counter, and a security key used to encrypt cookies.

Per-session state too large or too structured for the session cookie lives in [Beans],
kept in a [BeanStore] keyed by the session ID.

A [Persister] saves both right before a response is committed;
see [StatePersister].
*/
package session
