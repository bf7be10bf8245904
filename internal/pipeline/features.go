package pipeline

import "fmt"

// Feature value types understood by the built-in pipeline kinds.
const (
	featureNumeric     = "numeric"
	featureCategorical = "categorical"
)

// featureSpec declares one input column of a trained pipeline: its name,
// type, and the value to substitute when the caller omits the field. The
// impute values are baked in at training time.
type featureSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
	// Substitute for missing numeric values (typically the training median).
	ImputeNumber *float64 `json:"impute_number,omitempty"`
	// Substitute for missing categorical values (typically the training mode).
	ImputeCategory *string `json:"impute_category,omitempty"`

	// Standardization and encoding parameters, used by the logistic kind.
	Mean       float64  `json:"mean,omitempty"`
	Std        float64  `json:"std,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

func (f featureSpec) validate() error {
	if f.Name == "" {
		return fmt.Errorf("feature with empty name")
	}
	switch f.Type {
	case featureNumeric, featureCategorical:
		return nil
	default:
		return fmt.Errorf("feature %q: unknown type %q", f.Name, f.Type)
	}
}

// number resolves the feature's numeric value from row, imputing when the
// field is missing.
func (f featureSpec) number(row Row) (float64, error) {
	if v, ok := row.Number(f.Name); ok {
		return v, nil
	}
	if f.ImputeNumber != nil {
		return *f.ImputeNumber, nil
	}
	return 0, fmt.Errorf("missing value for feature %q and no imputation", f.Name)
}

// category resolves the feature's categorical value from row, imputing when
// the field is missing.
func (f featureSpec) category(row Row) (string, error) {
	if v, ok := row.Category(f.Name); ok {
		return v, nil
	}
	if f.ImputeCategory != nil {
		return *f.ImputeCategory, nil
	}
	return "", fmt.Errorf("missing value for feature %q and no imputation", f.Name)
}

// indexFeatures builds a name lookup, validating each declaration.
func indexFeatures(features []featureSpec) (map[string]featureSpec, error) {
	byName := make(map[string]featureSpec, len(features))
	for _, f := range features {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := byName[f.Name]; dup {
			return nil, fmt.Errorf("duplicate feature %q", f.Name)
		}
		byName[f.Name] = f
	}
	return byName, nil
}
