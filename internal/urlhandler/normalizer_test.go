package urlhandler

import (
	"errors"
	"net/url"
	"testing"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/aleister1102/linkcheck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNormalize(t *testing.T) {
	base := "https://site.com/page/sub"

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "absolute passes through", raw: "https://other.com/style.css", expected: "https://other.com/style.css"},
		{name: "absolute with query and fragment", raw: "http://other.com/a.js?v=1#x", expected: "http://other.com/a.js?v=1#x"},
		{name: "non-http scheme passes through", raw: "data:image/png;base64,AAAA", expected: "data:image/png;base64,AAAA"},
		{name: "root relative resolves against origin", raw: "/app.js", expected: "https://site.com/app.js"},
		{name: "path relative ignores page path", raw: "img/logo.png", expected: "https://site.com/img/logo.png"},
		{name: "dot segments stay under origin", raw: "../assets/app.css", expected: "https://site.com/assets/app.css"},
		{name: "query only", raw: "?v=2", expected: "https://site.com/?v=2"},
		{name: "protocol relative containing host", raw: "//cdn.site.com/logo.png", expected: "https://cdn.site.com/logo.png"},
		{name: "protocol relative same host", raw: "//site.com/a.js", expected: "https://site.com/a.js"},
		{name: "protocol relative foreign host", raw: "//other.com/a.js", expected: "https://other.com/a.js"},
		{name: "host substring inside path misfires", raw: "/assets/site.com.png", expected: "https:/assets/site.com.png"},
		{name: "surrounding whitespace trimmed", raw: "  /app.js\n", expected: "https://site.com/app.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, mustParse(t, base))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)

			_, err = url.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestNormalize_KeepsPort(t *testing.T) {
	base := mustParse(t, "http://127.0.0.1:8080/deep/page.html")

	got, err := Normalize("static/a.js", base)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/static/a.js", got)

	got, err = Normalize("//127.0.0.1:8080/b.js", base)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/b.js", got)
}

func TestReferenceNormalizer_ProtocolRelativeStrategy(t *testing.T) {
	n, err := NewReferenceNormalizer(mustParse(t, "https://site.com/page/sub"), config.NormalizeStrategyProtocolRelative)
	require.NoError(t, err)

	got, err := n.Normalize("//cdn.site.com/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.site.com/logo.png", got)

	got, err = n.Normalize("/assets/site.com.png")
	require.NoError(t, err)
	assert.Equal(t, "https://site.com/assets/site.com.png", got)
}

func TestNormalize_Malformed(t *testing.T) {
	base := mustParse(t, "https://site.com/")

	tests := []string{
		"%zz",
		"http://site.com/%zz",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := Normalize(raw, base)
			require.Error(t, err)

			var malformed *MalformedReferenceError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, raw, malformed.Raw)
			assert.Equal(t, "https://site.com/", malformed.Base)
		})
	}
}

func TestNewReferenceNormalizer_Invalid(t *testing.T) {
	_, err := NewReferenceNormalizer(nil, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = NewReferenceNormalizer(mustParse(t, "/relative"), "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = NewReferenceNormalizer(mustParse(t, "https://site.com"), "prefix")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestParseTargetURL(t *testing.T) {
	u, err := ParseTargetURL(" https://site.com/page/sub ")
	require.NoError(t, err)
	assert.Equal(t, "site.com", u.Host)
	assert.Equal(t, "/page/sub", u.Path)

	for _, raw := range []string{"", "   ", "ftp://site.com", "site.com/page", "https://"} {
		_, err := ParseTargetURL(raw)
		assert.Error(t, err, raw)
	}
}

func TestOrigin(t *testing.T) {
	o := Origin(mustParse(t, "https://user@site.com:8443/a/b?q=1#frag"))
	assert.Equal(t, "https://site.com:8443/", o.String())
}
