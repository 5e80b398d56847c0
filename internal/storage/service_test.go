package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := New(srv.URL, "key-123")
	url, err := svc.Upload(context.Background(), "gym_photos", "front.jpg", []byte("jpegdata"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/objects/gym_photos/"))
	assert.True(t, strings.HasSuffix(gotPath, ".jpg"))
	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, srv.URL+gotPath, url)
}

func TestUploadUniqueKeys(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := New(srv.URL, "")
	_, err := svc.Upload(context.Background(), "p", "a.png", []byte("x"))
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), "p", "a.png", []byte("x"))
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.NotEqual(t, paths[0], paths[1])
}

func TestUploadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := New(srv.URL, "")
	_, err := svc.Upload(context.Background(), "p", "a.png", []byte("x"))
	assert.Error(t, err)
}

func TestDeleteByURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	svc := New(srv.URL, "")
	err := svc.DeleteByURL(context.Background(), srv.URL+"/objects/gym_photos/abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/objects/gym_photos/abc.jpg", gotPath)
}
