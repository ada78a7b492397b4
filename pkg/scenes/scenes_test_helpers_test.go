package scenes

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
)

const blobVariantYAML = `
name: streaks
count: 8
resize: rescale
background:
  clear: transparent
velocity:
  mode: polar
  speed: { min: 0.2, max: 0.6 }
radius: { min: 120, max: 300 }
opacity: { min: 0.15, max: 0.4 }
damping: 0.98
pointer:
  mode: impulse
  radius: 250
  strength: 0.8
boundary:
  policy: wrap
  marginFromSize: true
render:
  shape: blob
  color: "#ffffff"
click:
  enabled: true
  count: 3
  delay: 3s
  speed: { min: 1.2, max: 3.2 }
  radius: { min: 100, max: 250 }
  opacity: { min: 0.35, max: 0.6 }
`

func testVariant(t *testing.T) *config.FieldVariant {
	t.Helper()
	v, err := config.ParseFieldVariant([]byte(blobVariantYAML))
	if err != nil {
		t.Fatalf("ParseFieldVariant failed: %v", err)
	}
	return v
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func pointCount(em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[*components.PointComponent](em))
}

// fakeClock 手动推进的时钟
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
