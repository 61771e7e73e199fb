package sanitize_test

import (
	"testing"

	"lingolearn-backend/pkg/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	cases := []struct {
		name  string
		dirty string
		want  string
	}{
		{"script dropped with its body", `<script>alert(1)</script>Hello World Class`, "Hello World Class"},
		{"event handlers stripped", `<img src=x onerror=alert(1)>caption`, "caption"},
		{"allowed formatting kept", `<strong>bold</strong> and <em>italic</em>`, "<strong>bold</strong> and <em>italic</em>"},
		{"disallowed tag unwrapped", `<a href="https://evil">click</a>`, "click"},
		{"iframe removed", `<iframe src="https://evil"></iframe>plain`, "plain"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"only markup yields empty", `<script>x</script>`, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, sanitize.HTML(c.dirty))
		})
	}
}
