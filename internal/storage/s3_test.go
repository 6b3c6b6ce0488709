package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
}

type fakeBucket struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
	})
	f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestService(t *testing.T, endpoint string) *S3Service {
	t.Helper()
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	})
	svc, err := NewS3Service(client, "posters")
	require.NoError(t, err)
	return svc
}

func TestNewS3Service_RequiresBucket(t *testing.T) {
	_, err := NewS3Service(s3.New(s3.Options{Region: "us-east-1"}), " ")
	assert.Error(t, err)
}

func TestS3Service_PutAndDelete(t *testing.T) {
	bucket := &fakeBucket{}
	srv := httptest.NewServer(bucket)
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	ctx := context.Background()

	err := svc.Put(ctx, "posters/a/b.png", bytes.NewReader([]byte("png-bytes")), "image/png")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "posters/a/b.png"))

	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	require.Len(t, bucket.requests, 2)
	assert.Equal(t, http.MethodPut, bucket.requests[0].Method)
	assert.Equal(t, "/posters/posters/a/b.png", bucket.requests[0].Path)
	assert.Equal(t, "image/png", bucket.requests[0].ContentType)
	assert.Equal(t, http.MethodDelete, bucket.requests[1].Method)
	assert.Equal(t, "/posters/posters/a/b.png", bucket.requests[1].Path)
}

func TestS3Service_PresignGet(t *testing.T) {
	svc := newTestService(t, "http://minio.local:9000")

	url, err := svc.PresignGet(context.Background(), "posters/a/b.png", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://minio.local:9000/posters/posters/a/b.png?"), url)
	assert.Contains(t, url, "X-Amz-Expires=300")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestPosterKey(t *testing.T) {
	movieID := uuid.MustParse("0b3f5d6e-4a36-4d7c-9a59-0c7f8f6f2e11")

	key := PosterKey("/posters/", movieID, "Cover.PNG")
	assert.True(t, strings.HasPrefix(key, "posters/"+movieID.String()+"/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	other := PosterKey("posters", movieID, "Cover.PNG")
	assert.NotEqual(t, key, other)

	assert.True(t, strings.HasPrefix(PosterKey("", movieID, "x.jpg"), movieID.String()+"/"))
	assert.NotContains(t, PosterKey("p", movieID, `C:\tmp\evil.jpg`), `\`)
	assert.False(t, strings.Contains(PosterKey("p", movieID, "noext"), "."))
}
