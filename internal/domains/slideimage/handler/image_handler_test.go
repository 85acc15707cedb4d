package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck-backend/internal/domains/slideimage/model"
)

// stubService returns canned values; handler tests only exercise HTTP
// plumbing and status mapping.
type stubService struct {
	listResult     []*model.SlideImageResponse
	addResult      *model.SlideImageResponse
	generateResult *model.GenerateImagesResponse
	err            error
}

func (s *stubService) ListImages(_ context.Context, _ uuid.UUID) ([]*model.SlideImageResponse, error) {
	return s.listResult, s.err
}

func (s *stubService) AddImage(_ context.Context, _ uuid.UUID, _ *model.AddImageRequest) (*model.SlideImageResponse, error) {
	return s.addResult, s.err
}

func (s *stubService) UpdateImage(_ context.Context, _ uuid.UUID, _ *model.UpdateImageRequest) (*model.SlideImageResponse, error) {
	return s.addResult, s.err
}

func (s *stubService) DeleteImage(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func (s *stubService) Reorder(_ context.Context, _ uuid.UUID, _ *model.ReorderImagesRequest) error {
	return s.err
}

func (s *stubService) SetPrimary(_ context.Context, _, _ uuid.UUID) error {
	return s.err
}

func (s *stubService) GenerateImages(_ context.Context, _ uuid.UUID, _ *model.GenerateImagesRequest) (*model.GenerateImagesResponse, error) {
	return s.generateResult, s.err
}

func setupTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewImageHandler(svc)

	router := gin.New()
	router.GET("/slides/:id/images", h.ListImages)
	router.POST("/slides/:id/images", h.AddImage)
	router.POST("/slides/:id/images/reorder", h.ReorderImages)
	router.POST("/slides/:id/images/generate", h.GenerateImages)
	router.PUT("/slides/:id/images/:image_id/set-primary", h.SetPrimaryImage)
	router.PATCH("/images/:id", h.UpdateImage)
	router.DELETE("/images/:id", h.DeleteImage)
	return router
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListImagesOK(t *testing.T) {
	svc := &stubService{listResult: []*model.SlideImageResponse{
		{ID: uuid.New(), Position: 1, IsPrimary: true},
	}}
	router := setupTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/slides/"+uuid.NewString()+"/images", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.Total)
}

func TestListImagesRejectsMalformedSlideID(t *testing.T) {
	router := setupTestRouter(&stubService{})

	w := doRequest(router, http.MethodGet, "/slides/not-a-uuid/images", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddImageCreated(t *testing.T) {
	svc := &stubService{addResult: &model.SlideImageResponse{ID: uuid.New(), Position: 1}}
	router := setupTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/slides/"+uuid.NewString()+"/images", gin.H{
		"image_url": "http://example.com/a.png",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", model.NewValidationError("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"image not found", model.NewImageNotFound(uuid.NewString()), http.StatusNotFound, "IMAGE_NOT_FOUND"},
		{"slide not found", model.NewSlideNotFound(uuid.NewString()), http.StatusNotFound, "SLIDE_NOT_FOUND"},
		{"generation upstream", model.NewGenerationError(assert.AnError), http.StatusBadGateway, "GENERATION_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupTestRouter(&stubService{err: tc.err})

			w := doRequest(router, http.MethodPost, "/slides/"+uuid.NewString()+"/images/reorder", gin.H{
				"image_ids": []string{uuid.NewString()},
			})
			assert.Equal(t, tc.wantStatus, w.Code)

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}

func TestGenerateImagesPartialFailureStillOK(t *testing.T) {
	svc := &stubService{generateResult: &model.GenerateImagesResponse{
		Succeeded: []*model.SlideImageResponse{{ID: uuid.New()}},
		Failed:    []model.FailedPrompt{{Prompt: "a haunted house", Position: 2, Error: "upstream timed out"}},
	}}
	router := setupTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/slides/"+uuid.NewString()+"/images/generate", gin.H{
		"prompts": []gin.H{{"prompt": "a red barn", "position": 1}},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.GenerateImagesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Succeeded, 1)
	assert.Len(t, resp.Data.Failed, 1)
}

func TestSetPrimaryInvalidImageID(t *testing.T) {
	router := setupTestRouter(&stubService{})

	w := doRequest(router, http.MethodPut, "/slides/"+uuid.NewString()+"/images/nope/set-primary", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
