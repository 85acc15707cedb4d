package generation

import "context"

// Request describes one image to generate.
type Request struct {
	SlideID     string
	Prompt      string
	AspectRatio string
	Style       map[string]interface{}
}

// Result is what the collaborator hands back: a URL to the stored image.
type Result struct {
	URL      string
	MimeType string
}

// Generator is the image-generation collaborator. The coordinator in the
// slideimage service only depends on this interface.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
