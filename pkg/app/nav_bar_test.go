package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
)

func TestNavBarHitTest(t *testing.T) {
	n := NewNavBar()
	n.Resize(800)

	// 三个按钮靠右：424-544, 544-664, 664-784
	tests := []struct {
		name   string
		x, y   float64
		wantID string
		wantOK bool
	}{
		{"brand area", 100, 20, "", false},
		{"home", 430, 20, config.SectionHero, true},
		{"showcase", 600, 10, config.SectionShowcase, true},
		{"clients", 783, 47, config.SectionClients, true},
		{"right padding", 790, 20, "", false},
		{"below bar", 600, 48, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := n.HitTest(tt.x, tt.y)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestNavBarHover(t *testing.T) {
	n := NewNavBar()
	n.Resize(800)

	n.SetHover(600, 20)
	assert.Equal(t, config.SectionShowcase, n.Hovered())
	n.SetHover(100, 20)
	assert.Equal(t, "", n.Hovered())
	n.SetHover(430, 20)
	n.ClearHover()
	assert.Equal(t, "", n.Hovered())

	assert.True(t, n.Contains(10, 10))
	assert.False(t, n.Contains(10, 60))
}
