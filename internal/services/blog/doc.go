// Package blog hosts the browser-facing blog service: post pages, the Atom
// feed and the health probe, composed from modules over one post store.
package blog
