// Package clippings parses the "My Clippings.txt" export written by Kindle
// e-readers into title/body notes.
//
// The file is a sequence of entries separated by a line of ten equals signs:
//
//	A fake title (Last, First)
//	- Your Highlight on page 8 | Location 64-64 | Added on Tuesday, April 15, 2025 10:16:21 PM
//
//	would change for the better.
//	==========
//
// The first line of an entry is the book title. Lines starting with one of
// the configured marker prefixes (bookmark, highlight, note) carry metadata
// only and are dropped, as are empty lines. Whatever remains becomes the
// note body. Marker prefixes are localized by the device, so they come from
// Markers rather than being hard-coded.
package clippings
