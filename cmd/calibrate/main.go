// Command calibrate trains the linear decision weights offline on a
// synthetic labeled corpus and persists (weights, standardizer, threshold)
// for the scoring engine to load.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/credence-io/credence/pkg/credence/classify"
	"github.com/credence-io/credence/pkg/credence/config"
	"github.com/credence-io/credence/pkg/credence/features"
	"github.com/credence-io/credence/pkg/credence/ingest"
	"github.com/credence-io/credence/pkg/credence/reference"
	"github.com/credence-io/credence/pkg/credence/watchlist"
)

func main() {
	var (
		outPath    = flag.String("out", "model.yaml", "output model path")
		corpusPath = flag.String("corpus", "", "reference corpus word counts (optional)")
		trainSize  = flag.Int("train", 100, "training articles to generate")
		testSize   = flag.Int("test", 50, "held-out articles to generate")
		seed       = flag.Int64("seed", 42, "generator seed")
	)
	flag.Parse()

	model := reference.Uniform()
	if *corpusPath != "" {
		counts, err := config.LoadWordCounts(*corpusPath)
		if err != nil {
			log.Fatal("Failed to load corpus: ", err)
		}
		model = reference.NewModel(counts)
	}
	extractor := features.NewExtractor(model, watchlist.Builtin(), features.DefaultOveruseConfig())

	rng := rand.New(rand.NewSource(*seed))

	fmt.Println("Generating synthetic articles...")
	train := generateSet(rng, *trainSize)
	unreliable := 0
	for _, s := range train {
		if s.Unreliable {
			unreliable++
		}
	}
	fmt.Printf("Training with %d articles (%d unreliable, %d reliable)\n",
		len(train), unreliable, len(train)-unreliable)

	cal, err := classify.Calibrate(train, extractor)
	if err != nil {
		log.Fatal("Calibration failed: ", err)
	}

	fmt.Printf("Accuracy: %.2f\n", cal.Accuracy)
	fmt.Printf("Threshold set to: %.2f\n", cal.Model.Threshold)
	fmt.Printf("Percentage classified as unreliable: %.1f%%\n", cal.FlaggedPercent)

	if err := config.SaveModel(*outPath, cal.Model); err != nil {
		log.Fatal("Failed to save model: ", err)
	}
	fmt.Printf("Model written to %s\n", *outPath)

	if *testSize > 0 {
		fmt.Printf("\nGenerating %d new articles for testing...\n", *testSize)
		test := generateSet(rng, *testSize)

		classifier := classify.NewClassifier(cal.Model)
		correct, flagged := 0, 0
		for _, s := range test {
			v, _ := extractor.Extract(ingest.Normalize(s.Text))
			result := classifier.Classify(v)
			predicted := result.Label == classify.LabelMisleading
			if predicted {
				flagged++
			}
			if predicted == s.Unreliable {
				correct++
			}
		}
		fmt.Printf("Test Accuracy: %.2f\n", float64(correct)/float64(len(test)))
		fmt.Printf("Test Percentage classified as unreliable: %.1f%%\n",
			float64(flagged)/float64(len(test))*100)
	}
}

// generateSet produces a shuffled 80/20 reliable/unreliable mix.
func generateSet(rng *rand.Rand, n int) []classify.Sample {
	samples := make([]classify.Sample, 0, n)
	unreliable := n / 5
	for i := 0; i < n-unreliable; i++ {
		samples = append(samples, classify.Sample{Text: generateArticle(rng, false)})
	}
	for i := 0; i < unreliable; i++ {
		samples = append(samples, classify.Sample{Text: generateArticle(rng, true), Unreliable: true})
	}
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
	return samples
}
