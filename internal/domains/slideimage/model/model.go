package model

import (
	"time"

	"github.com/google/uuid"
)

// ImageType records where an image came from.
type ImageType string

const (
	ImageTypeGenerated ImageType = "generated"
	ImageTypeUploaded  ImageType = "uploaded"
	ImageTypeStock     ImageType = "stock"
)

func (t ImageType) IsValid() bool {
	switch t {
	case ImageTypeGenerated, ImageTypeUploaded, ImageTypeStock:
		return true
	}
	return false
}

func (t ImageType) String() string {
	return string(t)
}

const DefaultAspectRatio = "16:9"

// SlideImage is one image attached to a slide.
//
// Invariants maintained by the service layer:
//   - positions are unique within a slide at any committed state,
//     contiguous from 1 by convention (gaps tolerated on read);
//   - at most one image per slide has IsPrimary = true.
type SlideImage struct {
	ID      uuid.UUID `json:"id" db:"id"`
	SlideID uuid.UUID `json:"slide_id" db:"slide_id"`

	// ImageURL is null while generation is still pending.
	ImageURL    *string   `json:"image_url" db:"image_url"`
	ImagePrompt *string   `json:"image_prompt" db:"image_prompt"`
	ImageType   ImageType `json:"image_type" db:"image_type"`

	Position      int                    `json:"position" db:"position"`
	AspectRatio   string                 `json:"aspect_ratio" db:"aspect_ratio"`
	StyleMetadata map[string]interface{} `json:"style_metadata,omitempty" db:"style_metadata"`
	IsPrimary     bool                   `json:"is_primary" db:"is_primary"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UpdateFields is a partial patch for a SlideImage. Nil means "leave as is".
type UpdateFields struct {
	ImageURL      *string
	ImagePrompt   *string
	ImageType     *ImageType
	Position      *int
	AspectRatio   *string
	StyleMetadata map[string]interface{}
}

// IsEmpty reports whether the patch changes nothing.
func (u *UpdateFields) IsEmpty() bool {
	return u.ImageURL == nil &&
		u.ImagePrompt == nil &&
		u.ImageType == nil &&
		u.Position == nil &&
		u.AspectRatio == nil &&
		u.StyleMetadata == nil
}
