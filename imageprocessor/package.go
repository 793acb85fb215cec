// Package imageprocessor decodes source images and renders them into fixed-size
// RGB JPEG thumbnails.
//
// A Backend owns the whole decode, rotate, resize, convert and encode chain for
// one file. The pure Go "imaging" backend is always available; the "opencv"
// backend is compiled in with the opencv build tag.
package imageprocessor
