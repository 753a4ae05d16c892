package entities

// Gif is a hint animation returned by the hint provider.
type Gif struct {
	ID     string
	Title  string
	URL    string
	Width  int
	Height int
}
