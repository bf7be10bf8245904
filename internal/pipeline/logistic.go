package pipeline

import (
	"encoding/json"
	"fmt"
)

// KindLogistic is the artifact kind for multinomial logistic classifiers.
const KindLogistic = "logistic"

func init() {
	Register(KindLogistic, decodeLogistic)
}

type logisticSpec struct {
	Features     []featureSpec `json:"features"`
	Classes      []string      `json:"classes"`
	Coefficients [][]float64   `json:"coefficients"`
	Intercepts   []float64     `json:"intercepts"`
}

// logisticPipeline scores each class as a linear function of the encoded
// row and returns the argmax label. Numeric features are standardized with
// the training mean/std; categorical features are one-hot encoded over the
// training categories (unknown categories encode to all zeros).
type logisticPipeline struct {
	spec    logisticSpec
	columns int
}

func decodeLogistic(spec []byte) (Pipeline, error) {
	var s logisticSpec
	if err := json.Unmarshal(spec, &s); err != nil {
		return nil, err
	}
	if _, err := indexFeatures(s.Features); err != nil {
		return nil, err
	}
	if len(s.Classes) == 0 {
		return nil, fmt.Errorf("logistic pipeline has no classes")
	}
	columns := 0
	for _, f := range s.Features {
		switch f.Type {
		case featureNumeric:
			columns++
		case featureCategorical:
			if len(f.Categories) == 0 {
				return nil, fmt.Errorf("categorical feature %q has no categories", f.Name)
			}
			columns += len(f.Categories)
		}
	}
	if len(s.Coefficients) != len(s.Classes) || len(s.Intercepts) != len(s.Classes) {
		return nil, fmt.Errorf("coefficient rows (%d) and intercepts (%d) must match classes (%d)",
			len(s.Coefficients), len(s.Intercepts), len(s.Classes))
	}
	for i, row := range s.Coefficients {
		if len(row) != columns {
			return nil, fmt.Errorf("class %q: %d coefficients, want %d", s.Classes[i], len(row), columns)
		}
	}
	return &logisticPipeline{spec: s, columns: columns}, nil
}

// encode expands row into the trained column layout.
func (p *logisticPipeline) encode(row Row) ([]float64, error) {
	x := make([]float64, 0, p.columns)
	for _, f := range p.spec.Features {
		switch f.Type {
		case featureNumeric:
			v, err := f.number(row)
			if err != nil {
				return nil, err
			}
			std := f.Std
			if std == 0 {
				std = 1
			}
			x = append(x, (v-f.Mean)/std)
		case featureCategorical:
			v, err := f.category(row)
			if err != nil {
				return nil, err
			}
			for _, c := range f.Categories {
				if c == v {
					x = append(x, 1)
				} else {
					x = append(x, 0)
				}
			}
		}
	}
	return x, nil
}

func (p *logisticPipeline) Predict(row Row) (string, error) {
	x, err := p.encode(row)
	if err != nil {
		return "", err
	}
	best := 0
	bestScore := 0.0
	for i := range p.spec.Classes {
		score := p.spec.Intercepts[i]
		for j, v := range x {
			score += p.spec.Coefficients[i][j] * v
		}
		if i == 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return p.spec.Classes[best], nil
}
