// Package link merges assembled modules into one image.
//
// Symbol tables are merged first; every label must end up defined by exactly
// one module. Each external fill site then becomes a relocation, and the
// modules' words are replayed in order with relocated addresses patched.
package link
