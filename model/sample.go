package model

import (
	"os"

	"github.com/GuangyongChen/m3f/matrix"
	"github.com/GuangyongChen/m3f/sstable"
)

// Sample holds one posterior draw of the model parameters
// produced by the gibbs sampler. Parameter matrices are stored
// entity major: one row per user or item, one column per latent
// factor or topic. Absent features (no factorization term, no
// user or item topics) are represented by nil matrices.
type Sample struct {
	// global offset
	Chi float64
	// latent factor matrices, U x F for users and M x F for items
	A *matrix.Float64Matrix
	B *matrix.Float64Matrix
	// log topic probabilities, U x KU for users and M x KM for items
	LogThetaU *matrix.Float64Matrix
	LogThetaM *matrix.Float64Matrix
	// topic indexed offsets. note the cross indexing: c is keyed
	// by user and modulated by the item's topic (U x KM), d is
	// keyed by item and modulated by the user's topic (M x KU)
	C *matrix.Float64Matrix
	D *matrix.Float64Matrix
}

// number of latent factors F, zero when the factorization term is absent
func (this *Sample) FactorNum() uint32 {
	if this.A == nil {
		return 0
	}
	_, c := this.A.Shape()
	return c
}

// number of user topics KU
func (this *Sample) UserTopicNum() uint32 {
	if this.LogThetaU == nil {
		return 0
	}
	_, c := this.LogThetaU.Shape()
	return c
}

// number of item topics KM
func (this *Sample) ItemTopicNum() uint32 {
	if this.LogThetaM == nil {
		return 0
	}
	_, c := this.LogThetaM.Shape()
	return c
}

// serialize sample parameters under the given file prefix,
// absent parameter matrices produce no file
func (this *Sample) Save(prefix string) error {
	chi := matrix.NewFloat64Matrix(uint32(1), uint32(1))
	chi.Set(uint32(0), uint32(0), this.Chi)
	if err := sstable.Float64Serialize(chi, prefix+".chi"); err != nil {
		return err
	}

	parts := map[string]*matrix.Float64Matrix{
		".a":         this.A,
		".b":         this.B,
		".logthetau": this.LogThetaU,
		".logthetam": this.LogThetaM,
		".c":         this.C,
		".d":         this.D,
	}
	for suffix, m := range parts {
		if m == nil {
			continue
		}
		if err := sstable.Float64Serialize(m, prefix+suffix); err != nil {
			return err
		}
	}
	return nil
}

// deserialize a sample from files under the given prefix,
// missing parameter files are treated as absent features
func LoadSample(prefix string) (*Sample, error) {
	chi, err := sstable.Float64Deserialize(prefix + ".chi")
	if err != nil {
		return nil, err
	}
	s := &Sample{Chi: chi.Get(uint32(0), uint32(0))}

	parts := map[string]**matrix.Float64Matrix{
		".a":         &s.A,
		".b":         &s.B,
		".logthetau": &s.LogThetaU,
		".logthetam": &s.LogThetaM,
		".c":         &s.C,
		".d":         &s.D,
	}
	for suffix, dst := range parts {
		m, err := sstable.Float64Deserialize(prefix + suffix)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		*dst = m
	}
	return s, nil
}
