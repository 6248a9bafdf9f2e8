/*
Package logger provides logging functionality to a dispatch app by defining the required behavior in [Logger]
and providing an implementation of it with [DispatchLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.

# DispatchLogger

Log messages emitted by [DispatchLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] resp/response.go:43 'forwarding to tmpl/success.tmpl' log_context: {"data":{"request":"9d2c..."}}

The log context is a JSON-encoded [*LogContext].

# Safe

Responses are finalized at times the logging infrastructure may not be ready.
[Safe] wraps a [Logger] so any panic raised while logging is recovered and dropped.
*/
package logger
