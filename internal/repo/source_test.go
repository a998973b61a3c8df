package repo

import (
	"errors"
	"testing"
)

func TestNameFromSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"https url", "https://github.com/acme/widgets.git", "widgets"},
		{"https url without suffix", "https://github.com/acme/widgets", "widgets"},
		{"scp style ssh", "git@github.com:acme/widgets.git", "widgets"},
		{"local path", "/srv/src/widgets", "widgets"},
		{"shorthand", "acme/widgets", "widgets"},
		{"bare name", "widgets", "widgets"},
		{"odd characters sanitized", "https://example.com/weird%20name", "weird-20name"},
		{"trailing whitespace", "  acme/widgets.git  ", "widgets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NameFromSource(tt.source)
			if err != nil {
				t.Fatalf("NameFromSource(%q) error = %v", tt.source, err)
			}
			if got != tt.want {
				t.Errorf("NameFromSource(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()
		if _, err := NameFromSource("   "); !errors.Is(err, ErrInvalidSource) {
			t.Errorf("NameFromSource() error = %v, want ErrInvalidSource", err)
		}
	})
}

func TestGithubSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"plain shorthand", "acme/widgets", "acme/widgets"},
		{"git suffix stripped", "acme/widgets.git", "acme/widgets"},
		{"trailing slash stripped", "acme/widgets/", "acme/widgets"},
		{"https url rejected", "https://github.com/acme/widgets", ""},
		{"ssh rejected", "git@github.com:acme/widgets.git", ""},
		{"user at host rejected", "user@host:path", ""},
		{"absolute path rejected", "/srv/acme/widgets", ""},
		{"relative path rejected", "./acme/widgets", ""},
		{"home path rejected", "~/acme/widgets", ""},
		{"three segments rejected", "acme/widgets/extra", ""},
		{"single segment rejected", "widgets", ""},
		{"whitespace rejected", "acme/wid gets", ""},
		{"invalid slug chars rejected", "acme/wid%gets", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GithubSlug(tt.source); got != tt.want {
				t.Errorf("GithubSlug(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "gadgets", want: "gadgets"},
		{name: "  gadgets.git ", want: "gadgets"},
		{name: "my repo!", want: "my-repo"},
		{name: "###", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"widgets", "widgets"},
		{"my repo!", "my-repo"},
		{"--widgets--", "widgets"},
		{"a  b", "a-b"},
		{"feature_1.2", "feature_1.2"},
		{"###", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeName(tt.raw); got != tt.want {
				t.Errorf("sanitizeName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
