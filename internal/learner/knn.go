package learner

import (
	"fmt"

	"github.com/drakos74/polyclass/internal/data"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/knn"
)

const (
	// KNNName is the name of the nearest neighbours learner.
	KNNName = "knn"
	// DefaultNeighbours is the number of neighbours that vote by default.
	DefaultNeighbours = 5
)

// KNNLearner builds a k nearest neighbours classifier.
type KNNLearner struct {
	Neighbours int
}

// NewKNN creates a nearest neighbours learner.
func NewKNN(k int) *KNNLearner {
	return &KNNLearner{Neighbours: k}
}

func (l *KNNLearner) Name() string {
	return KNNName
}

func (l *KNNLearner) Fit(t *data.Table) (Model, error) {
	s, err := prepare(t)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.binary(); err != nil {
		return nil, err
	}

	yy := make([]float64, len(s.y))
	for i, c := range s.y {
		yy[i] = float64(c)
	}
	train, err := data.NewTable(data.NewDomain(t.Domain.Attributes, t.Domain.Class), s.x, yy, nil)
	if err != nil {
		return nil, err
	}
	instances, err := data.ToInstances(train)
	if err != nil {
		return nil, fmt.Errorf("could not create instances: %w", err)
	}

	cls := knn.NewKnnClassifier("euclidean", "linear", l.Neighbours)
	if err := cls.Fit(instances); err != nil {
		return nil, fmt.Errorf("could not fit knn: %w", err)
	}

	return &KNN{
		classifier: cls,
		template:   instances,
		domain:     train.Domain,
	}, nil
}

// KNN is a fitted nearest neighbours classifier.
type KNN struct {
	classifier *knn.KNNClassifier
	template   *base.DenseInstances
	domain     data.Domain
}

func (m *KNN) Predict(x []float64) (int, error) {
	if err := checkFeatures(x, len(m.domain.Attributes)); err != nil {
		return 0, err
	}

	point := base.NewStructuralCopy(m.template)
	if err := point.Extend(1); err != nil {
		return 0, fmt.Errorf("could not allocate point: %w", err)
	}
	for i, attr := range base.NonClassAttributes(point) {
		spec, err := point.GetAttribute(attr)
		if err != nil {
			return 0, err
		}
		point.Set(spec, 0, base.PackFloatToBytes(x[i]))
	}

	predictions, err := m.classifier.Predict(point)
	if err != nil {
		return 0, fmt.Errorf("could not predict: %w", err)
	}
	label := base.GetClass(predictions, 0)
	for i, v := range m.domain.Class.Values {
		if v == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("predicted unknown class '%s': %w", label, ErrNoClass)
}
