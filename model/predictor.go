package model

import (
	"runtime"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// Flags select which model terms contribute to the prediction.
// They are fixed for a whole call and applied to every sample.
type Flags struct {
	// add the matrix factorization contribution <a,b> and
	// the global offset chi
	AddBase bool
	// add the user keyed offsets c, modulated by item topics
	AddCOffsets bool
	// add the item keyed offsets d, modulated by user topics
	AddDOffsets bool
}

type Predictor struct {
	workers int
}

// NewPredictor creates a predictor that scores dyads with up to
// workers goroutines, workers <= 0 means one per cpu
func NewPredictor(workers int) *Predictor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Predictor{workers: workers}
}

// Predict forms predictions for the given dyads under each posterior
// sample and accumulates them into one prediction per dyad. With more
// than one sample the accumulated predictions are averaged into a
// posterior mean estimate; a single sample keeps the raw sum, which
// is what the sampler needs when computing partial residuals.
//
// users and items are 1-based ids of equal length, zU and zM carry
// the sampled topics or mark the topic dimension for integration.
// Parameter shapes are taken from the first sample; there is no
// checking for invalid inputs.
func (this *Predictor) Predict(users, items []uint32, samples []*Sample,
	zU, zM Assignment, flags Flags) []float64 {
	// new slice auto-initialized to zeros
	preds := make([]float64, len(users))
	if len(samples) == 0 {
		return preds
	}

	userTopicNum := samples[0].UserTopicNum()
	itemTopicNum := samples[0].ItemTopicNum()
	facNum := samples[0].FactorNum()

	log.Infof("predicting %d dyads over %d samples", len(users), len(samples))

	// form predictions under each sample
	for _, s := range samples {
		// incorporate d offsets into prediction
		if flags.AddDOffsets && userTopicNum > 0 {
			this.addOffsets(users, items, userTopicNum,
				s.LogThetaU, s.D, zU, preds)
		}
		// incorporate c offsets into prediction
		if flags.AddCOffsets && itemTopicNum > 0 {
			this.addOffsets(items, users, itemTopicNum,
				s.LogThetaM, s.C, zM, preds)
		}
		// incorporate factorization term and global offset
		if flags.AddBase {
			if facNum > 0 {
				chi := s.Chi
				a, b := s.A, s.B
				this.parallelFor(len(preds), func(e int) {
					preds[e] += chi +
						floats.Dot(a.Row(users[e]-1), b.Row(items[e]-1))
				})
			} else {
				for e := range preds {
					preds[e] += s.Chi
				}
			}
		}
	}

	if len(samples) > 1 {
		// average over all sample predictions
		floats.Scale(1/float64(len(samples)), preds)
	}

	return preds
}
