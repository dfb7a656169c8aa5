package entry

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuide_KnownLabels(t *testing.T) {
	g := NewGuide(rand.NewPCG(1, 2))
	cases := []struct {
		label     string
		recs      [2][]string
		resources bool
	}{
		{"suicidal ideation", recommendationGroups[5].recs, true},
		{"depression/sadness/loneliness/bipolar", recommendationGroups[3].recs, true},
		{"anxiety disorders", recommendationGroups[2].recs, true},
		{"personality/psychotic disorders", recommendationGroups[4].recs, true},
		{"positive mood", recommendationGroups[0].recs, false},
		{"normal", recommendationGroups[1].recs, false},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			out := g.For(tc.label)
			assert.Contains(t, analyses[tc.label], out.Analysis)
			require.Len(t, out.Recommendations, 2)
			assert.Contains(t, tc.recs[0], out.Recommendations[0])
			assert.Contains(t, tc.recs[1], out.Recommendations[1])
			assert.Equal(t, tc.resources, out.ShowResources)
			if tc.resources {
				assert.Len(t, out.Resources, 1)
			} else {
				assert.Empty(t, out.Resources)
			}
		})
	}
}

func TestGuide_SuicidalResources(t *testing.T) {
	g := NewGuide(rand.NewPCG(5, 6))
	out := g.For("  Suicidal Ideation ")
	require.Len(t, out.Resources, 1)
	assert.Contains(t, resourceGroups[0].resources, out.Resources[0])
	assert.Contains(t, analyses["suicidal ideation"], out.Analysis)
}

func TestGuide_UnknownLabel(t *testing.T) {
	out := NewGuide(rand.NewPCG(1, 2)).For("boredom")
	assert.Equal(t, fallbackAnalysis, out.Analysis)
	require.Len(t, out.Recommendations, 2)
	assert.Contains(t, fallbackRecommendations[0], out.Recommendations[0])
	assert.Contains(t, fallbackRecommendations[1], out.Recommendations[1])
	assert.False(t, out.ShowResources)
	assert.NotNil(t, out.Resources)
}

func TestGuide_ReproducibleWithSeed(t *testing.T) {
	a := NewGuide(rand.NewPCG(9, 9))
	b := NewGuide(rand.NewPCG(9, 9))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.For("anxiety disorders"), b.For("anxiety disorders"))
	}
}

func TestGuide_ConcurrentUse(t *testing.T) {
	g := NewGuide(rand.NewPCG(1, 1))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, g.For("normal").Recommendations, 2)
		}()
	}
	wg.Wait()
}

func TestService_SubmitUsesInjectedGuide(t *testing.T) {
	c := &stubClassifier{p: Prediction{Label: "suicidal ideation", Confidence: 88}}
	svc := NewService(&memStore{}, c, 10, "v1", WithGuide(NewGuide(rand.NewPCG(3, 4))))

	_, got, err := svc.Submit(context.Background(), nil, longText, "")
	require.NoError(t, err)
	assert.Equal(t, NewGuide(rand.NewPCG(3, 4)).For("suicidal ideation"), got)
	assert.True(t, got.ShowResources)
}
