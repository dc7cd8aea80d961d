package rendering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Marcus Reed", "marcus_reed"},
		{"  José  O'Neil-Smith ", "jos_o_neil_smith"},
		{"ALL CAPS 2", "all_caps_2"},
		{"!!!", "unnamed"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.input))
		})
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "resume_marcus_reed_20240305_140709.docx", Filename("Marcus Reed", at))
}

func TestEnsureExtension(t *testing.T) {
	assert.Equal(t, "mine.docx", EnsureExtension("mine"))
	assert.Equal(t, "mine.docx", EnsureExtension("mine.docx"))
	assert.Equal(t, "mine.DOCX", EnsureExtension("mine.DOCX"))
}
