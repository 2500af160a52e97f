// Package cache provides a generic, thread-safe LRU cache.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// The text renderer keeps scaled glyph outlines here and the
// compositor keeps per-copy color conversions.
package cache
