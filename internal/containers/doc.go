// Package containers lists running containers through a container engine CLI,
// probes them for an interactive shell, and launches terminal sessions into them.
//
// Every interaction with the engine goes through an execshell executor with an
// explicit argument vector, so container names and identifiers are never
// reinterpreted by a shell.
package containers
