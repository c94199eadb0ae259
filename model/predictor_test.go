package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GuangyongChen/m3f/matrix"
)

func TestPredictGlobalOffsetOnly(t *testing.T) {
	p := NewPredictor(1)

	// single sample, no factorization term, no topics
	s := &Sample{Chi: 2.5}
	users := []uint32{1, 2, 3}
	items := []uint32{3, 2, 1}

	preds := p.Predict(users, items, []*Sample{s},
		Integrated(), Integrated(), Flags{AddBase: true})

	assert.Equal(t, []float64{2.5, 2.5, 2.5}, preds)
}

func TestPredictBilinear(t *testing.T) {
	p := NewPredictor(1)

	a := matrix.NewFloat64Matrix(uint32(2), uint32(2))
	a.Set(uint32(0), uint32(0), 1.0)
	a.Set(uint32(0), uint32(1), 2.0)
	a.Set(uint32(1), uint32(0), -1.0)
	a.Set(uint32(1), uint32(1), 0.5)

	b := matrix.NewFloat64Matrix(uint32(2), uint32(2))
	b.Set(uint32(0), uint32(0), 3.0)
	b.Set(uint32(0), uint32(1), -1.0)
	b.Set(uint32(1), uint32(0), 2.0)
	b.Set(uint32(1), uint32(1), 4.0)

	s := &Sample{Chi: 0.0, A: a, B: b}
	users := []uint32{1, 2}
	items := []uint32{2, 1}

	preds := p.Predict(users, items, []*Sample{s},
		Integrated(), Integrated(), Flags{AddBase: true})

	// <(1,2),(2,4)> and <(-1,0.5),(3,-1)>
	assert.InDelta(t, 10.0, preds[0], 1e-12)
	assert.InDelta(t, -3.5, preds[1], 1e-12)
}

// build a sample exercising every model term:
// 2 users, 2 items, F=1, KU=2, KM=3
func newFullSample(chi float64) *Sample {
	a := matrix.NewFloat64Matrix(uint32(2), uint32(1))
	a.Set(uint32(0), uint32(0), 2.0)
	a.Set(uint32(1), uint32(0), 4.0)

	b := matrix.NewFloat64Matrix(uint32(2), uint32(1))
	b.Set(uint32(0), uint32(0), 3.0)
	b.Set(uint32(1), uint32(0), 1.0)

	logthetaU := matrix.NewFloat64Matrix(uint32(2), uint32(2))
	for u := uint32(0); u < 2; u += 1 {
		logthetaU.Set(u, uint32(0), math.Log(0.25))
		logthetaU.Set(u, uint32(1), math.Log(0.75))
	}

	logthetaM := matrix.NewFloat64Matrix(uint32(2), uint32(3))
	for m := uint32(0); m < 2; m += 1 {
		logthetaM.Set(m, uint32(0), math.Log(0.5))
		logthetaM.Set(m, uint32(1), math.Log(0.3))
		logthetaM.Set(m, uint32(2), math.Log(0.2))
	}

	// c keyed by user, one column per item topic
	c := matrix.NewFloat64Matrix(uint32(2), uint32(3))
	c.Set(uint32(0), uint32(0), 0.1)
	c.Set(uint32(0), uint32(1), 0.2)
	c.Set(uint32(0), uint32(2), 0.3)
	c.Set(uint32(1), uint32(0), -0.1)
	c.Set(uint32(1), uint32(1), -0.2)
	c.Set(uint32(1), uint32(2), -0.3)

	// d keyed by item, one column per user topic
	d := matrix.NewFloat64Matrix(uint32(2), uint32(2))
	d.Set(uint32(0), uint32(0), 1.0)
	d.Set(uint32(0), uint32(1), -1.0)
	d.Set(uint32(1), uint32(0), 0.5)
	d.Set(uint32(1), uint32(1), -0.5)

	return &Sample{
		Chi:       chi,
		A:         a,
		B:         b,
		LogThetaU: logthetaU,
		LogThetaM: logthetaM,
		C:         c,
		D:         d,
	}
}

func TestPredictCrossIndexedOffsets(t *testing.T) {
	p := NewPredictor(1)

	s := newFullSample(0.0)
	users := []uint32{1, 2}
	items := []uint32{2, 1}
	zU := Assigned([]uint32{2, 1})
	zM := Assigned([]uint32{3, 1})

	preds := p.Predict(users, items, []*Sample{s}, zU, zM,
		Flags{AddCOffsets: true, AddDOffsets: true})

	// d is looked up by item id and the user's sampled topic,
	// c by user id and the item's sampled topic
	assert.InDelta(t, s.D.Get(uint32(1), uint32(1))+s.C.Get(uint32(0), uint32(2)),
		preds[0], 1e-12)
	assert.InDelta(t, s.D.Get(uint32(0), uint32(0))+s.C.Get(uint32(1), uint32(0)),
		preds[1], 1e-12)
}

func TestPredictMarginalizedOffsets(t *testing.T) {
	p := NewPredictor(1)

	s := newFullSample(0.0)
	users := []uint32{1}
	items := []uint32{2}

	preds := p.Predict(users, items, []*Sample{s},
		Integrated(), Integrated(),
		Flags{AddCOffsets: true, AddDOffsets: true})

	// d integrated under user 1's topic distribution,
	// c integrated under item 2's topic distribution
	dPart := 0.25*s.D.Get(uint32(1), uint32(0)) + 0.75*s.D.Get(uint32(1), uint32(1))
	cPart := 0.5*s.C.Get(uint32(0), uint32(0)) + 0.3*s.C.Get(uint32(0), uint32(1)) +
		0.2*s.C.Get(uint32(0), uint32(2))
	assert.InDelta(t, dPart+cPart, preds[0], 1e-12)
}

func TestPredictAveragingIdenticalSamples(t *testing.T) {
	p := NewPredictor(1)

	users := []uint32{1, 2}
	items := []uint32{2, 1}
	flags := Flags{AddBase: true, AddCOffsets: true, AddDOffsets: true}

	single := p.Predict(users, items, []*Sample{newFullSample(1.5)},
		Integrated(), Integrated(), flags)

	var samples []*Sample
	for i := 0; i < 5; i += 1 {
		samples = append(samples, newFullSample(1.5))
	}
	averaged := p.Predict(users, items, samples,
		Integrated(), Integrated(), flags)

	for e := range single {
		assert.InDelta(t, single[e], averaged[e], 1e-12)
	}
}

func TestPredictSingleSampleKeepsRawSum(t *testing.T) {
	p := NewPredictor(1)

	users := []uint32{1}
	items := []uint32{1}

	// one sample: the accumulated contribution is returned as is,
	// which is what residual computation during sampling relies on
	preds := p.Predict(users, items, []*Sample{{Chi: 4.0}},
		Integrated(), Integrated(), Flags{AddBase: true})
	assert.Equal(t, 4.0, preds[0])

	// two samples: the sum is averaged into a posterior mean
	preds = p.Predict(users, items, []*Sample{{Chi: 4.0}, {Chi: 2.0}},
		Integrated(), Integrated(), Flags{AddBase: true})
	assert.InDelta(t, 3.0, preds[0], 1e-12)
}

func TestPredictNoSamples(t *testing.T) {
	p := NewPredictor(1)

	preds := p.Predict([]uint32{1, 2}, []uint32{1, 2}, nil,
		Integrated(), Integrated(), Flags{AddBase: true})

	assert.Equal(t, []float64{0.0, 0.0}, preds)
}

func TestPredictEndToEnd(t *testing.T) {
	p := NewPredictor(1)

	newSample := func(chi float64) *Sample {
		a := matrix.NewFloat64Matrix(uint32(2), uint32(1))
		a.Set(uint32(0), uint32(0), 2.0)
		a.Set(uint32(1), uint32(0), 4.0)
		b := matrix.NewFloat64Matrix(uint32(2), uint32(1))
		b.Set(uint32(0), uint32(0), 3.0)
		b.Set(uint32(1), uint32(0), 1.0)
		return &Sample{Chi: chi, A: a, B: b}
	}
	samples := []*Sample{newSample(1.0), newSample(3.0)}

	users := []uint32{1, 2}
	items := []uint32{1, 2}

	preds := p.Predict(users, items, samples,
		Integrated(), Integrated(), Flags{AddBase: true})

	// dyad (1,1): ((1+2*3) + (3+2*3)) / 2
	// dyad (2,2): ((1+4*1) + (3+4*1)) / 2
	assert.InDelta(t, 8.0, preds[0], 1e-12)
	assert.InDelta(t, 6.0, preds[1], 1e-12)
}

func TestPredictParallelMatchesSequential(t *testing.T) {
	users := make([]uint32, 101)
	items := make([]uint32, 101)
	for e := range users {
		users[e] = uint32(e%2 + 1)
		items[e] = uint32((e+1)%2 + 1)
	}
	samples := []*Sample{newFullSample(0.5), newFullSample(-0.5)}
	flags := Flags{AddBase: true, AddCOffsets: true, AddDOffsets: true}

	sequential := NewPredictor(1).Predict(users, items, samples,
		Integrated(), Integrated(), flags)
	parallel := NewPredictor(8).Predict(users, items, samples,
		Integrated(), Integrated(), flags)

	for e := range sequential {
		assert.InDelta(t, sequential[e], parallel[e], 1e-12)
	}
}
