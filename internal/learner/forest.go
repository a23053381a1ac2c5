package learner

import (
	"github.com/drakos74/polyclass/internal/data"
	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
)

const (
	// ForestName is the name of the random forest learner.
	ForestName = "forest"
	// DefaultTrees is the number of trees grown by default.
	DefaultTrees = 100
)

// RandomForestLearner grows a random forest on the given table.
type RandomForestLearner struct {
	Trees int
}

// NewRandomForest creates a random forest learner with the given number of trees.
func NewRandomForest(trees int) *RandomForestLearner {
	return &RandomForestLearner{Trees: trees}
}

func (l *RandomForestLearner) Name() string {
	return ForestName
}

func (l *RandomForestLearner) Fit(t *data.Table) (Model, error) {
	s, err := prepare(t)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.binary(); err != nil {
		return nil, err
	}

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: s.x, Class: s.y}
	forest.Train(l.Trees)

	log.Debug().
		Int("trees", l.Trees).
		Int("rows", len(s.x)).
		Floats64("importance", forest.FeatureImportance).
		Msg("trained forest")

	return &RandomForest{
		forest:   forest,
		features: len(t.Domain.Attributes),
	}, nil
}

// RandomForest is a fitted forest. It does not expose a linear boundary.
type RandomForest struct {
	forest   *randomforest.Forest
	features int
}

func (m *RandomForest) Predict(x []float64) (int, error) {
	if err := checkFeatures(x, m.features); err != nil {
		return 0, err
	}
	return argmax(m.forest.Vote(x)), nil
}

func argmax(vv []float64) int {
	var best int
	for i, v := range vv {
		if v > vv[best] {
			best = i
		}
	}
	return best
}
