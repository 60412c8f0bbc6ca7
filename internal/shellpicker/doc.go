// Package shellpicker lists running containers, keeps those that can run an
// interactive shell, lets the user pick one and opens a terminal attached to it.
//
// Service runs the flow once and returns a single Outcome and error; the
// command builders expose it as the root command and the list subcommand.
package shellpicker
