// Package ui renders command lifecycle events as concise console messages
// when repometa runs with the console log format.
package ui
