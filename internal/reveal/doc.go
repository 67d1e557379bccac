// Package reveal decides when a thread is open for comments and when the
// authors of its comments become visible.
//
// Every decision is a pure function of a thread's window and a caller-supplied
// instant. Nothing is cached and nothing flips on a timer: a thread is Expired
// the moment a reader samples a time at or past its end. Callers must sample
// the clock once per request and pass that instant to every check the request
// performs, so a single response never mixes two lifecycle states.
package reveal
