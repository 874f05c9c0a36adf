// Package session is the serialization point between concurrent item
// producers and the single UI loop. Producers enqueue commands; the UI
// loop drains and applies them in FIFO order. The package also holds
// the selection state machine driving cursor, marks and terminal
// outcomes.
package session
