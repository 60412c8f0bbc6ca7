// Package ui provides helpers for human-readable console output.
//
// ConsoleCommandEventLogger turns engine and terminal command events into
// concise log lines, and ErrorNotifier prints the single message shown when
// the program gives up.
package ui
