// Package utils provides helpers shared across the object-storage packages.
// It holds the key naming rules: a directory is a key that ends in "/",
// and every directory operation normalizes its input with DirKey first.
package utils
