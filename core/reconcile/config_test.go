package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Paths(t *testing.T) {
	tests := []struct {
		name        string
		directories string
		want        []string
	}{
		{
			name:        "comma separated",
			directories: "/media/movies,/media/tv",
			want:        []string{"/media/movies", "/media/tv"},
		},
		{
			name:        "newline separated",
			directories: "/media/movies\n/media/tv",
			want:        []string{"/media/movies", "/media/tv"},
		},
		{
			name:        "mixed separators with whitespace",
			directories: " /media/movies ,\n /media/tv ",
			want:        []string{"/media/movies", "/media/tv"},
		},
		{
			name:        "empty entries are dropped",
			directories: ",/media/movies,,",
			want:        []string{"/media/movies"},
		},
		{
			name:        "empty value",
			directories: "",
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Directories: tt.directories}
			assert.Equal(t, tt.want, cfg.Paths())
		})
	}
}
