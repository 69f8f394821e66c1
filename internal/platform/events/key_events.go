package events

// Console key events. Handlers for both are registered on the run loop
// thread and fed by the console producer.
const (
	// KeyEnter carries no arguments.
	KeyEnter = "key-enter"

	// Key carries the pressed rune: func(rune).
	Key = "key"
)

// Quit is the key that stops the run loop instead of being emitted.
const Quit = 'q'
