package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var aspectRatioPattern = regexp.MustCompile(`^\d+:\d+$`)

// =====================================================
// ADD IMAGE REQUEST
// =====================================================

type AddImageRequest struct {
	ImageURL      *string                `json:"image_url"`
	ImagePrompt   *string                `json:"image_prompt"`
	ImageType     string                 `json:"image_type"`
	Position      *int                   `json:"position"` // defaults to end of list
	AspectRatio   string                 `json:"aspect_ratio"`
	StyleMetadata map[string]interface{} `json:"style_metadata"`
}

func (req AddImageRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ImageType, validation.In(
			ImageTypeGenerated.String(),
			ImageTypeUploaded.String(),
			ImageTypeStock.String(),
		)),
		validation.Field(&req.Position, validation.Min(1)),
		validation.Field(&req.AspectRatio, validation.Match(aspectRatioPattern)),
	)
}

// =====================================================
// UPDATE IMAGE REQUEST
// =====================================================

type UpdateImageRequest struct {
	ImageURL      *string                `json:"image_url"`
	ImagePrompt   *string                `json:"image_prompt"`
	ImageType     *string                `json:"image_type"`
	Position      *int                   `json:"position"`
	AspectRatio   *string                `json:"aspect_ratio"`
	StyleMetadata map[string]interface{} `json:"style_metadata"`
}

func (req UpdateImageRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ImageType, validation.In(
			ImageTypeGenerated.String(),
			ImageTypeUploaded.String(),
			ImageTypeStock.String(),
		)),
		validation.Field(&req.Position, validation.Min(1)),
		validation.Field(&req.AspectRatio, validation.Match(aspectRatioPattern)),
	)
}

// ToUpdateFields converts the request into a repository patch.
func (req UpdateImageRequest) ToUpdateFields() *UpdateFields {
	fields := &UpdateFields{
		ImageURL:      req.ImageURL,
		ImagePrompt:   req.ImagePrompt,
		Position:      req.Position,
		AspectRatio:   req.AspectRatio,
		StyleMetadata: req.StyleMetadata,
	}
	if req.ImageType != nil {
		t := ImageType(*req.ImageType)
		fields.ImageType = &t
	}
	return fields
}

// =====================================================
// REORDER REQUEST
// =====================================================

// ReorderImagesRequest carries the FULL desired ordering of a slide's
// images. Submitting the whole ordering (rather than a move delta) makes
// the operation idempotent and leaves no tie-break ambiguity.
type ReorderImagesRequest struct {
	ImageIDs []uuid.UUID `json:"image_ids"`
}

func (req ReorderImagesRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ImageIDs, validation.Required, validation.Length(1, 0)),
	)
}

// =====================================================
// GENERATE IMAGES REQUEST
// =====================================================

type GeneratePromptItem struct {
	Prompt   string `json:"prompt"`
	Position int    `json:"position"`
}

func (item GeneratePromptItem) Validate() error {
	return validation.ValidateStruct(&item,
		validation.Field(&item.Prompt, validation.Required),
		validation.Field(&item.Position, validation.Required, validation.Min(1)),
	)
}

type GenerateImagesRequest struct {
	Prompts       []GeneratePromptItem   `json:"prompts"`
	AspectRatio   string                 `json:"aspect_ratio"`
	StyleMetadata map[string]interface{} `json:"style_metadata"`
}

// Validate checks the envelope only. Per-item validation happens inside the
// batch loop so one bad prompt fails that item, not the whole request.
func (req GenerateImagesRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Prompts, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.AspectRatio, validation.Match(aspectRatioPattern)),
	)
}

// =====================================================
// RESPONSES
// =====================================================

type SlideImageResponse struct {
	ID            uuid.UUID              `json:"id"`
	SlideID       uuid.UUID              `json:"slide_id"`
	ImageURL      *string                `json:"image_url"`
	ImagePrompt   *string                `json:"image_prompt"`
	ImageType     string                 `json:"image_type"`
	Position      int                    `json:"position"`
	AspectRatio   string                 `json:"aspect_ratio"`
	StyleMetadata map[string]interface{} `json:"style_metadata,omitempty"`
	IsPrimary     bool                   `json:"is_primary"`
	CreatedAt     time.Time              `json:"created_at"`
}

func (img *SlideImage) ToResponse() *SlideImageResponse {
	return &SlideImageResponse{
		ID:            img.ID,
		SlideID:       img.SlideID,
		ImageURL:      img.ImageURL,
		ImagePrompt:   img.ImagePrompt,
		ImageType:     img.ImageType.String(),
		Position:      img.Position,
		AspectRatio:   img.AspectRatio,
		StyleMetadata: img.StyleMetadata,
		IsPrimary:     img.IsPrimary,
		CreatedAt:     img.CreatedAt,
	}
}

// FailedPrompt reports one prompt that could not be turned into an image.
type FailedPrompt struct {
	Prompt   string `json:"prompt"`
	Position int    `json:"position"`
	Error    string `json:"error"`
}

// GenerateImagesResponse is the itemized outcome of a generation batch plus
// the refreshed slide view. Partial success is the expected case.
type GenerateImagesResponse struct {
	Succeeded []*SlideImageResponse `json:"succeeded"`
	Failed    []FailedPrompt        `json:"failed"`
	Images    []*SlideImageResponse `json:"images"`
}
