// Package tillittest provides mocks and helpers shared by the extension
// tests. Use it only in tests.
package tillittest
