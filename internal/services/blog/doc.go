// Package blog hosts the browser-facing blog: the public reading pages and
// the /backend post management screens.
//
// Posts are read from and written to the table store on every request; the
// server keeps no copy of them. Markdown bodies are rendered to HTML at read
// time from the HTML-escaped text the store holds.
package blog
