package plex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *HTTPClient {
	return NewClient(Config{
		URL:            serverURL,
		Token:          "test-token",
		TimeoutSeconds: 5,
	})
}

func TestSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Plex-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"MediaContainer": {
				"Directory": [
					{"key": "1", "type": "movie", "title": "Movies",
					 "Location": [{"id": 1, "path": "/media/movies"}]},
					{"key": "2", "type": "show", "title": "TV Shows",
					 "Location": [{"id": 2, "path": "/media/tv"}, {"id": 3, "path": "/media/anime"}]}
				]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	sections, err := client.Sections(context.Background())

	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, Section{ID: "1", Title: "Movies", Type: "movie", Locations: []string{"/media/movies"}}, sections[0])
	assert.Equal(t, Section{ID: "2", Title: "TV Shows", Type: "show", Locations: []string{"/media/tv", "/media/anime"}}, sections[1])
}

func TestSections_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("unauthorized"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	sections, err := client.Sections(context.Background())

	assert.Error(t, err)
	assert.Nil(t, sections)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSectionFiles_Flat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections/1/all", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"MediaContainer": {
				"Metadata": [
					{"ratingKey": "101", "Media": [{"Part": [{"file": "/media/movies/A/a.mkv"}]}]},
					{"ratingKey": "102", "Media": [
						{"Part": [{"file": "/media/movies/B/b.mkv"}, {"file": "/media/movies/B/b.en.mkv"}]}
					]},
					{"ratingKey": "103", "Media": [{"Part": [{"file": ""}]}]}
				]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	files, err := client.SectionFiles(context.Background(), Section{ID: "1", Type: TypeMovie})

	require.NoError(t, err)
	// Empty part files are dropped
	assert.Equal(t, []string{
		"/media/movies/A/a.mkv",
		"/media/movies/B/b.mkv",
		"/media/movies/B/b.en.mkv",
	}, files)
}

func TestSectionFiles_Show(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/library/sections/2/all":
			_, _ = w.Write([]byte(`{
				"MediaContainer": {
					"Metadata": [
						{"ratingKey": "201"},
						{"ratingKey": "202"}
					]
				}
			}`))
		case "/library/metadata/201/allLeaves":
			_, _ = w.Write([]byte(`{
				"MediaContainer": {
					"Metadata": [
						{"ratingKey": "2011", "Media": [{"Part": [{"file": "/media/tv/S/s01e01.mkv"}]}]},
						{"ratingKey": "2012", "Media": [{"Part": [{"file": "/media/tv/S/s01e02.mkv"}]}]}
					]
				}
			}`))
		case "/library/metadata/202/allLeaves":
			_, _ = w.Write([]byte(`{
				"MediaContainer": {
					"Metadata": [
						{"ratingKey": "2021", "Media": [{"Part": [{"file": "/media/tv/T/t01e01.mkv"}]}]}
					]
				}
			}`))
		default:
			t.Errorf("unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	files, err := client.SectionFiles(context.Background(), Section{ID: "2", Type: TypeShow})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"/media/tv/S/s01e01.mkv",
		"/media/tv/S/s01e02.mkv",
		"/media/tv/T/t01e01.mkv",
	}, files)
}

func TestSectionFiles_ShowLeavesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/library/sections/2/all" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"MediaContainer": {"Metadata": [{"ratingKey": "201"}]}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	files, err := client.SectionFiles(context.Background(), Section{ID: "2", Type: TypeShow})

	assert.Error(t, err)
	assert.Nil(t, files)
}

func TestRefreshPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections/1/refresh", r.URL.Path)
		gotPath = r.URL.Query().Get("path")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.RefreshPath(context.Background(), "1", "/media/movies/New Movie (2024)")

	require.NoError(t, err)
	// The folder path must survive URL encoding intact
	assert.Equal(t, "/media/movies/New Movie (2024)", gotPath)
}

func TestRefreshPath_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("section not found"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.RefreshPath(context.Background(), "99", "/media/movies/X")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestPing(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/identity", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		assert.NoError(t, client.Ping(context.Background()))
	})

	t.Run("Unreachable", func(t *testing.T) {
		// Port from a closed listener: connection refused
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client := newTestClient(serverURL)
		assert.Error(t, client.Ping(context.Background()))
	})
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	client := NewClient(Config{URL: "http://plex:32400/", Token: "t"})
	assert.Equal(t, "http://plex:32400", client.baseURL)

	parsed, err := url.Parse(client.baseURL)
	require.NoError(t, err)
	assert.Equal(t, "plex:32400", parsed.Host)
}
