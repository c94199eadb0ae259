package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/GuangyongChen/m3f/dyad"
	"github.com/GuangyongChen/m3f/model"
	"github.com/GuangyongChen/m3f/sstable"
)

var (
	dyadFile     = flag.String("dyad_file", "", "input (user, item) pair file")
	samplePrefix = flag.String("sample_prefix", "", "posterior sample file prefix")
	sampleNum    = flag.Int("sample_num", 1, "number of posterior samples")
	zuFile       = flag.String("zu_file", "", "sampled user topic file, empty to integrate out")
	zmFile       = flag.String("zm_file", "", "sampled item topic file, empty to integrate out")
	addBase      = flag.Bool("add_base", true, "add factorization term and global offset")
	addC         = flag.Bool("add_c", true, "add user keyed topic offsets c")
	addD         = flag.Bool("add_d", true, "add item keyed topic offsets d")
	workers      = flag.Int("workers", 0, "number of scoring goroutines, 0 for one per cpu")
	output       = flag.String("output", "preds.out", "prediction output file")
)

func main() {
	flag.Parse()

	// read dyads to be scored
	dyads := &dyad.Set{}
	dyads.Load(*dyadFile)

	// read posterior samples
	var samples []*model.Sample
	for t := 0; t < *sampleNum; t += 1 {
		s, err := model.LoadSample(fmt.Sprintf("%s.%d", *samplePrefix, t))
		if err != nil {
			log.Fatalf("loading sample %d: %v", t, err)
		}
		samples = append(samples, s)
	}

	// read sampled topics if given
	zU, zM := model.Integrated(), model.Integrated()
	if *zuFile != "" {
		topics, err := sstable.Uint32VectorDeserialize(*zuFile)
		if err != nil {
			log.Fatalf("loading user topics: %v", err)
		}
		zU = model.Assigned(topics)
	}
	if *zmFile != "" {
		topics, err := sstable.Uint32VectorDeserialize(*zmFile)
		if err != nil {
			log.Fatalf("loading item topics: %v", err)
		}
		zM = model.Assigned(topics)
	}

	flags := model.Flags{
		AddBase:     *addBase,
		AddCOffsets: *addC,
		AddDOffsets: *addD,
	}

	p := model.NewPredictor(*workers)
	preds := p.Predict(dyads.Users, dyads.Items, samples, zU, zM, flags)

	if err := sstable.Float64VectorSerialize(preds, *output); err != nil {
		log.Fatalf("writing predictions: %v", err)
	}
	log.Printf("wrote %d predictions to %s", len(preds), *output)
}
