// Package render turns chat messages into something a person can read.
package render

// Placeholder is a pending bot message (the typing indicator). Each
// submission gets its own handle so overlapping exchanges remove only
// their own indicator.
type Placeholder interface {
	Remove()
}

// Surface is where the chat controller displays messages. Implementations
// must be safe for concurrent use.
type Surface interface {
	// ShowUser displays text verbatim; it is never interpreted as markup.
	ShowUser(text string)
	// ShowBot displays text as markdown, code blocks included.
	ShowBot(text string)
	ShowTyping() Placeholder
	// Notify shows a transient status line such as a download confirmation.
	Notify(message string)
	Clear()
}

type placeholderFunc func()

func (f placeholderFunc) Remove() { f() }
