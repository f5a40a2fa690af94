// Package console reads lines from the user, routes slash-commands through a
// Dispatcher and hands everything else to a session.Session.
package console
