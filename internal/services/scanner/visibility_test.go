package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVisible(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"plain anchor", `<a href="#">x</a>`, true},
		{"display none", `<a href="#" style="display:none">x</a>`, false},
		{"visibility hidden", `<a href="#" style="visibility: hidden;">x</a>`, false},
		{"opacity zero", `<a href="#" style="opacity:0">x</a>`, false},
		{"zero width style", `<a href="#" style="width:0px">x</a>`, false},
		{"hidden attribute", `<a href="#" hidden>x</a>`, false},
		{"aria-hidden", `<a href="#" aria-hidden="true">x</a>`, false},
		{"aria-hidden false", `<a href="#" aria-hidden="false">x</a>`, true},
		{"zero height attribute", `<a href="#" height="0">x</a>`, false},
		{"unrelated style", `<a href="#" style="color:red">x</a>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor := anchorFromHTML(t, tt.html)
			assert.Equal(t, tt.want, isVisible(anchor))
		})
	}
}
