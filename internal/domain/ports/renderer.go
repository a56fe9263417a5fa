package ports

// MarkdownRenderer renders markdown content to HTML. Implementations must be
// safe for concurrent use.
type MarkdownRenderer interface {
	Render(content string) (string, error)
}
