package app

import (
	"math/rand/v2"
	"testing"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
)

const trailsVariantYAML = `
name: trails
count: 8
resize: rescale
background:
  clear: fade
velocity:
  mode: polar
  speed: { min: 0.5, max: 1.5 }
length: { min: 18, max: 40 }
opacity: { min: 0.5, max: 0.9 }
damping: 0.99
pointer:
  mode: continuous
  radius: 150
  strength: 1
  attract: true
boundary:
  policy: reflect
render:
  shape: streak
  color: "#ffffff"
click:
  enabled: true
  count: 3
  delay: 4s
  speed: { min: 1, max: 2 }
  length: { min: 30, max: 60 }
  opacity: { min: 0.7, max: 1 }
`

// heroVariantYAML 与 data/fields/hero.yaml 相同的自适应质量设置
const heroVariantYAML = `
name: hero
count: 80
resize: reinit
background:
  clear: full
  color: "#000000"
velocity:
  mode: uniform
  spread: 1.5
baseline: 0.02
damping: 0.98
pointer:
  mode: continuous
  radius: 200
  strength: 2
boundary:
  policy: wrap
  margin: 10
links:
  distance: 120
  opacity: 0.15
  color: "#ffffff"
render:
  shape: dot
  color: "#ffffff"
  alpha: 0.8
radius: { min: 2, max: 2 }
adaptive:
  enabled: true
  minFPS: 50
  floor: 40
  factor: 0.7
  window: 1s
`

func testVariant(t *testing.T) *config.FieldVariant {
	t.Helper()
	return parseVariant(t, trailsVariantYAML)
}

func parseVariant(t *testing.T, yaml string) *config.FieldVariant {
	t.Helper()
	v, err := config.ParseFieldVariant([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseFieldVariant failed: %v", err)
	}
	return v
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func pointCount(em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[*components.PointComponent](em))
}
