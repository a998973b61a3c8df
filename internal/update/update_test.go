package update

import "testing"

func TestParseOutdated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want string
	}{
		{
			"bbq outdated",
			`{"formulae":[{"name":"bbq","installed_versions":["1.0.0"],"current_version":"1.2.0"}],"casks":[]}`,
			"1.2.0",
		},
		{
			"other formulae only",
			`{"formulae":[{"name":"git","current_version":"2.47.0"}],"casks":[]}`,
			"",
		},
		{
			"up to date",
			`{"formulae":[],"casks":[]}`,
			"",
		},
		{
			"invalid json",
			`not json`,
			"",
		},
		{
			"whitespace version trimmed",
			`{"formulae":[{"name":"bbq","current_version":" 1.2.0 "}]}`,
			"1.2.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseOutdated([]byte(tt.json)); got != tt.want {
				t.Errorf("parseOutdated() = %q, want %q", got, tt.want)
			}
		})
	}
}
