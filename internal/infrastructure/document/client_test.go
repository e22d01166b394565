package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalpavruksha/backend/internal/domain"
)

func TestFetchDocument_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/data/products.json", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"key": "bud rot",
					"products": [
						{"name": "Bordeaux Mixture 1%", "url": "https://example.com/bordeaux"}
					]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	doc, err := client.FetchDocument(context.Background())

	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "bud rot", doc.Items[0].Key)
	require.Len(t, doc.Items[0].Products, 1)
	assert.Equal(t, "Bordeaux Mixture 1%", doc.Items[0].Products[0].Name)
}

func TestFetchDocument_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchDocument(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentUnavailable)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetchDocument_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not the document</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchDocument(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentUnavailable)
}
