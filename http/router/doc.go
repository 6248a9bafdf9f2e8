/*
Package router defines how a dispatch web server routes requests.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
the middlewares registered with OnEveryRequest are called,
then any middlewares added to the Route, in the order they appear.

Every handler registered is wrapped in middleware.ReportPanic.
*/
package router
