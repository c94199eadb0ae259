package model

import (
	"math"

	"github.com/GuangyongChen/m3f/matrix"
)

// addOffsets adds the topic indexed offset contribution of one
// sample to preds. It is written from the perspective of offsets
// modulated by user topics: primary are the user ids whose topic
// distribution applies, secondary are the item ids keying the
// offset table, offsets is M x topicNum and logtheta is U x topicNum.
// Switch the roles of the user and item inputs to add offsets
// modulated by item topics.
//
// Three cases, selected per call:
// given topics take the single table entry for the sampled topic,
// absent topics with topicNum > 1 integrate the table row under
// exp(logtheta), and a single topic collapses to a direct lookup.
func (this *Predictor) addOffsets(primary, secondary []uint32, topicNum uint32,
	logtheta, offsets *matrix.Float64Matrix, z Assignment, preds []float64) {
	switch {
	case z.Present():
		// use given topics
		this.parallelFor(len(preds), func(e int) {
			preds[e] += offsets.Get(secondary[e]-1, z.Topic(e)-1)
		})
	case topicNum > 1:
		// integrate out topics
		this.parallelFor(len(preds), func(e int) {
			sum := float64(0.0)
			for i := uint32(0); i < topicNum; i += 1 {
				sum += offsets.Get(secondary[e]-1, i) *
					math.Exp(logtheta.Get(primary[e]-1, i))
			}
			preds[e] += sum
		})
	default:
		// only one topic exists
		this.parallelFor(len(preds), func(e int) {
			preds[e] += offsets.Get(secondary[e]-1, uint32(0))
		})
	}
}
