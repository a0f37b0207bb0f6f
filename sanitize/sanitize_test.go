package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean_NeutralizesScriptPayloads(t *testing.T) {
	payloads := []string{
		"<script>alert(1)</script>",
		"<img src=x onerror=alert(1)>",
		"<svg/onload=alert(1)>",
		`"><script>document.cookie</script>`,
		"<a href='javascript:alert(1)'>x</a>",
	}

	for _, payload := range payloads {
		got := Clean(payload)
		require.NotContains(t, got, "<", "payload %q", payload)
		require.NotContains(t, got, ">", "payload %q", payload)
		require.NotContains(t, got, `"`, "payload %q", payload)
		require.NotContains(t, got, "'", "payload %q", payload)
	}
}

func TestClean_EncodesMarkupCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>hi</b>", "&lt;b&gt;hi&lt;/b&gt;"},
		{`say "hi"`, "say &#34;hi&#34;"},
		{"it's fine", "it&#39;s fine"},
		{"fish & chips", "fish &amp; chips"},
		{"plain text", "plain text"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Clean(tt.in), "input %q", tt.in)
	}
}

func TestClean_IsFixedPoint(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"&lt;b&gt;hi&lt;/b&gt;",
		"&amp; already encoded &#34;quoted&#34;",
		"fish & chips",
		"&#x27;hex entity&#x27;",
		"dangling &amp",
		"plain",
		"",
	}

	for _, in := range inputs {
		once := Clean(in)
		require.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestClean_PreservesExistingEntities(t *testing.T) {
	// Already-encoded text must not be double-encoded.
	require.Equal(t, "&lt;script&gt;", Clean("&lt;script&gt;"))
	require.Equal(t, "&#34;", Clean("&#34;"))
}

func TestClean_EncodesBareAmpersands(t *testing.T) {
	require.Equal(t, "a &amp; b", Clean("a & b"))
	require.Equal(t, "&amp;notanentity x", Clean("&notanentity x"))
	require.Equal(t, "&amp;", Clean("&"))
}

func TestClean_StripsControlCharacters(t *testing.T) {
	require.Equal(t, "abc", Clean("a\x00b\x1bc"))
	require.Equal(t, "line1\nline2\ttabbed\r", Clean("line1\nline2\ttabbed\r"))
}

func TestClean_DropsInvalidUTF8(t *testing.T) {
	got := Clean("ok\xff\xfeok")
	require.Equal(t, "okok", got)
}
