package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Totarae/VideoService/internal/apperrors"
	"github.com/Totarae/VideoService/internal/handlers"
	"github.com/Totarae/VideoService/internal/model"
	"github.com/Totarae/VideoService/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockService настраивается в каждом тесте через функции-поля.
type mockService struct {
	createFn func(ctx context.Context, req *model.CreateVideoRequest) (*model.VideoResponse, error)
	getFn    func(ctx context.Context, id int64) (*model.VideoResponse, error)
	updateFn func(ctx context.Context, id int64, req *model.UpdateVideoRequest) (*model.VideoResponse, error)
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context, query model.ListVideosQuery) (*model.PaginatedVideosResponse, error)
	pingFn   func(ctx context.Context) error
}

func (m *mockService) CreateVideo(ctx context.Context, req *model.CreateVideoRequest) (*model.VideoResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockService) GetVideo(ctx context.Context, id int64) (*model.VideoResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockService) UpdateVideo(ctx context.Context, id int64, req *model.UpdateVideoRequest) (*model.VideoResponse, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockService) DeleteVideo(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockService) ListVideos(ctx context.Context, query model.ListVideosQuery) (*model.PaginatedVideosResponse, error) {
	return m.listFn(ctx, query)
}

func (m *mockService) Ping(ctx context.Context) error {
	return m.pingFn(ctx)
}

func newTestRouter(svc *mockService) http.Handler {
	handler := handlers.NewHandler(svc, zap.NewNop())
	return router.NewRouter(handler, zap.NewNop())
}

func videoResponse(id int64) *model.VideoResponse {
	now := time.Now().UTC()
	return &model.VideoResponse{
		ID:        id,
		Title:     "Test Video",
		YoutubeID: "dQw4w9WgXcQ",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestIndex(t *testing.T) {
	r := newTestRouter(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Hello world!", w.Body.String())
}

func TestCreateVideo(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		body         string
		serviceErr   error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "created",
			path:         "/videos",
			body:         `{"title":"Test Video","youtube_id":"dQw4w9WgXcQ"}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "created via api prefix",
			path:         "/api/v1/videos",
			body:         `{"title":"Test Video","youtube_id":"dQw4w9WgXcQ"}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "malformed body",
			path:         "/videos",
			body:         `{"title":`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid request body",
		},
		{
			name:         "validation error",
			path:         "/videos",
			body:         `{"title":"","youtube_id":"dQw4w9WgXcQ"}`,
			serviceErr:   apperrors.New(apperrors.CodeValidation, "title: length must be between 1 and 100"),
			expectedCode: http.StatusBadRequest,
			expectedErr:  "title: length must be between 1 and 100",
		},
		{
			name:         "duplicate youtube_id",
			path:         "/videos",
			body:         `{"title":"Test Video","youtube_id":"dQw4w9WgXcQ"}`,
			serviceErr:   apperrors.New(apperrors.CodeConflict, "youtube_id already exists"),
			expectedCode: http.StatusConflict,
			expectedErr:  "youtube_id already exists",
		},
		{
			name:         "storage error is not leaked",
			path:         "/videos",
			body:         `{"title":"Test Video","youtube_id":"dQw4w9WgXcQ"}`,
			serviceErr:   apperrors.Wrap(assert.AnError, apperrors.CodeStorage, "database insert error"),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{
				createFn: func(ctx context.Context, req *model.CreateVideoRequest) (*model.VideoResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return videoResponse(1), nil
				},
			}
			r := newTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			if tt.expectedErr != "" {
				var errResp model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
				assert.Equal(t, tt.expectedErr, errResp.Error)
				return
			}

			var video model.VideoResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&video))
			assert.Equal(t, int64(1), video.ID)
			assert.Equal(t, "Test Video", video.Title)
			assert.Nil(t, video.DeletedAt)
		})
	}
}

func TestGetVideo(t *testing.T) {
	svc := &mockService{
		getFn: func(ctx context.Context, id int64) (*model.VideoResponse, error) {
			if id != 7 {
				return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("video with id %d not found", id))
			}
			return videoResponse(id), nil
		},
	}
	r := newTestRouter(svc)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/videos/7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var video model.VideoResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&video))
		assert.Equal(t, int64(7), video.ID)
		assert.Equal(t, "dQw4w9WgXcQ", video.YoutubeID)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/99", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var errResp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Equal(t, "video with id 99 not found", errResp.Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/videos/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateVideo(t *testing.T) {
	t.Run("partial body reaches service as pointers", func(t *testing.T) {
		var gotReq *model.UpdateVideoRequest
		svc := &mockService{
			updateFn: func(ctx context.Context, id int64, req *model.UpdateVideoRequest) (*model.VideoResponse, error) {
				gotReq = req
				resp := videoResponse(id)
				resp.Title = *req.Title
				return resp, nil
			},
		}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPut, "/videos/7", strings.NewReader(`{"title":"New Title"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotReq.Title)
		assert.Equal(t, "New Title", *gotReq.Title)
		assert.Nil(t, gotReq.YoutubeID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockService{
			updateFn: func(ctx context.Context, id int64, req *model.UpdateVideoRequest) (*model.VideoResponse, error) {
				return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("video with id %d not found", id))
			},
		}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPut, "/videos/99", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteVideo(t *testing.T) {
	deleted := map[int64]bool{}
	svc := &mockService{
		deleteFn: func(ctx context.Context, id int64) error {
			if deleted[id] {
				return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("video with id %d not found", id))
			}
			deleted[id] = true
			return nil
		},
	}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/videos/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Повторное удаление — ошибка, а не тихий успех
	req = httptest.NewRequest(http.MethodDelete, "/videos/7", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListVideos(t *testing.T) {
	t.Run("query parameters are passed through", func(t *testing.T) {
		var gotQuery model.ListVideosQuery
		svc := &mockService{
			listFn: func(ctx context.Context, query model.ListVideosQuery) (*model.PaginatedVideosResponse, error) {
				gotQuery = query
				return &model.PaginatedVideosResponse{
					Videos:     []model.VideoResponse{*videoResponse(1), *videoResponse(2)},
					Total:      3,
					Page:       query.Page,
					PerPage:    query.PerPage,
					TotalPages: 2,
				}, nil
			},
		}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/videos?page=1&per_page=2&search=awesome&order_by=title&order_direction=asc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, gotQuery.Page)
		assert.Equal(t, 2, gotQuery.PerPage)
		assert.Equal(t, "awesome", gotQuery.Search)
		assert.Equal(t, "title", gotQuery.OrderBy)
		assert.Equal(t, "asc", gotQuery.OrderDirection)

		var page model.PaginatedVideosResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		assert.Len(t, page.Videos, 2)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("storage error", func(t *testing.T) {
		svc := &mockService{
			listFn: func(ctx context.Context, query model.ListVideosQuery) (*model.PaginatedVideosResponse, error) {
				return nil, apperrors.Wrap(assert.AnError, apperrors.CodeStorage, "database list error")
			},
		}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/videos", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var errResp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Equal(t, "internal server error", errResp.Error)
	})
}

func TestPing(t *testing.T) {
	svc := &mockService{
		pingFn: func(ctx context.Context) error { return nil },
	}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
