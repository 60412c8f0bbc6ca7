// Package selection presents a numbered list of entries on the console and
// reads the user's choice.
package selection
