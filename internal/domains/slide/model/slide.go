package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	imagemodel "slidedeck-backend/internal/domains/slideimage/model"
)

// Slide is the owning entity for slide images.
//
// ImageURL, ImagePrompt and IsGeneratingImage are the legacy single-image
// representation, superseded by slide_images rows. They stay on the table
// as migration source data and for old clients.
type Slide struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PresentationID uuid.UUID `json:"presentation_id" db:"presentation_id"`

	Title    string `json:"title" db:"title"`
	Position int    `json:"position" db:"position"`

	// Legacy image fields (pre multi-image model).
	ImageURL          *string `json:"image_url" db:"image_url"`
	ImagePrompt       *string `json:"image_prompt" db:"image_prompt"`
	IsGeneratingImage bool    `json:"is_generating_image" db:"is_generating_image"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateSlideRequest struct {
	PresentationID uuid.UUID `json:"presentation_id"`
	Title          string    `json:"title"`
	Position       int       `json:"position"`
}

func (req CreateSlideRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.PresentationID, validation.Required),
		validation.Field(&req.Title, validation.Length(0, 500)),
		validation.Field(&req.Position, validation.Min(0)),
	)
}

type UpdateSlideRequest struct {
	Title       *string `json:"title"`
	Position    *int    `json:"position"`
	ImageURL    *string `json:"image_url"`
	ImagePrompt *string `json:"image_prompt"`
}

func (req UpdateSlideRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Length(0, 500)),
		validation.Field(&req.Position, validation.Min(0)),
	)
}

// SlideWithImages is the slide plus its ordered image collection, the view
// returned after mutations that touch the whole set.
type SlideWithImages struct {
	Slide  *Slide                           `json:"slide"`
	Images []*imagemodel.SlideImageResponse `json:"images"`
}
