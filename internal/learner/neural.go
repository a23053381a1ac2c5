package learner

import (
	"math"

	"github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/go-ex-machina/xmachina/net"
	"github.com/drakos74/go-ex-machina/xmachina/net/ff"
	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/polyclass/internal/data"
	"github.com/rs/zerolog/log"
)

const (
	// NeuralName is the name of the feed forward network learner.
	NeuralName = "neural"
	// DefaultEpochs is the number of passes over the data.
	DefaultEpochs = 100
	hidden        = 8
)

// NeuralLearner trains a small feed forward network with a softmax output per class.
type NeuralLearner struct {
	Epochs int
}

// NewNeural creates a network learner that trains for the given epochs.
func NewNeural(epochs int) *NeuralLearner {
	return &NeuralLearner{Epochs: epochs}
}

func (l *NeuralLearner) Name() string {
	return NeuralName
}

func (l *NeuralLearner) Fit(t *data.Table) (Model, error) {
	s, err := prepare(t)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.binary(); err != nil {
		return nil, err
	}

	nf := len(t.Domain.Attributes)
	scale := newScaler(s.x, nf)
	network := newNetwork(nf, s.classes)

	var loss float64
	for e := 0; e < l.Epochs; e++ {
		loss = 0
		for i, x := range s.x {
			out := xmath.Vec(s.classes)
			out[s.y[i]] = 1
			diff, _ := network.Train(xmath.Vec(nf).With(scale.apply(x)...), out)
			loss += diff.Norm()
		}
	}
	log.Debug().
		Int("epochs", l.Epochs).
		Int("rows", len(s.x)).
		Float64("loss", loss).
		Msg("trained network")

	return &Neural{
		net:      network,
		scale:    scale,
		features: nf,
	}, nil
}

// Neural is a fitted feed forward network. It does not expose a linear boundary.
type Neural struct {
	net      *ff.Network
	scale    scaler
	features int
}

func (m *Neural) Predict(x []float64) (int, error) {
	if err := checkFeatures(x, m.features); err != nil {
		return 0, err
	}
	out := m.net.Predict(xmath.Vec(m.features).With(m.scale.apply(x)...))
	return argmax(out), nil
}

func newNetwork(inputs, outputs int) *ff.Network {
	rate := ml.Learn(1, 0.1)

	initW := xmath.Rand(0, 1, math.Sqrt)
	initB := xmath.Rand(0, 1, math.Sqrt)
	network := ff.New(inputs, outputs).
		Add(hidden, net.NewBuilder().
			WithModule(ml.Base().
				WithRate(rate).
				WithActivation(ml.TanH)).
			WithWeights(initW, initB).
			Factory(net.NewActivationCell)).
		Add(outputs, net.NewBuilder().
			WithModule(ml.Base().
				WithRate(rate).
				WithActivation(ml.TanH)).
			WithWeights(initW, initB).
			Factory(net.NewActivationCell)).
		Add(outputs, net.NewBuilder().CellFactory(net.NewSoftCell))
	network.Loss(ml.Pow)
	return network
}

// scaler standardises features so that the tanh layers do not saturate.
type scaler struct {
	mean []float64
	std  []float64
}

func newScaler(xx [][]float64, n int) scaler {
	s := scaler{
		mean: make([]float64, n),
		std:  make([]float64, n),
	}
	for _, x := range xx {
		for j, v := range x {
			s.mean[j] += v / float64(len(xx))
		}
	}
	for _, x := range xx {
		for j, v := range x {
			s.std[j] += (v - s.mean[j]) * (v - s.mean[j]) / float64(len(xx))
		}
	}
	for j := range s.std {
		s.std[j] = math.Sqrt(s.std[j])
		if s.std[j] == 0 {
			s.std[j] = 1
		}
	}
	return s
}

func (s scaler) apply(x []float64) []float64 {
	y := make([]float64, len(x))
	for j, v := range x {
		y[j] = (v - s.mean[j]) / s.std[j]
	}
	return y
}
