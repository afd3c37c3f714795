// Package image models program memory as a set of address-tagged regions
// backed by a zero-filled logical address space. It is the loader view the
// decoding engine reads instruction bytes through.
package image
