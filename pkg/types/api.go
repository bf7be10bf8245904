package types

// FeatureRecord is the input to POST /predict: the physical measurements of
// one penguin. Optional fields may be omitted; the active pipeline imputes
// them internally.
type FeatureRecord struct {
	// Island the penguin was observed on.
	// example: Biscoe
	Island string `json:"island" example:"Biscoe"`
	// Bill length in millimeters.
	// example: 44.5
	BillLengthMM *float64 `json:"bill_length_mm,omitempty" example:"44.5"`
	// Bill depth in millimeters.
	// example: 17.1
	BillDepthMM *float64 `json:"bill_depth_mm,omitempty" example:"17.1"`
	// Flipper length in millimeters.
	// example: 210
	FlipperLengthMM *float64 `json:"flipper_length_mm,omitempty" example:"210"`
	// Body mass in grams.
	// example: 4400
	BodyMassG *float64 `json:"body_mass_g,omitempty" example:"4400"`
	// Recorded sex (male/female).
	// example: male
	Sex *string `json:"sex,omitempty" example:"male"`
	// Year of observation.
	// example: 2008
	Year int `json:"year" example:"2008"`
}

// SelectModelRequest is the body of POST /select_model.
type SelectModelRequest struct {
	// Name of the model to activate. Must appear in available_models.
	// example: svm
	ModelName string `json:"model_name" example:"svm"`
}

// SelectModelResponse is returned on a successful model switch.
type SelectModelResponse struct {
	// Human-readable confirmation.
	// example: active model updated
	Message string `json:"message" example:"active model updated"`
	// Name of the model now serving predictions.
	// example: svm
	ActiveModel string `json:"active_model" example:"svm"`
}

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	// Predicted species label.
	// example: Adelie
	Prediction string `json:"prediction" example:"Adelie"`
	// Name of the model that produced the prediction. The active model can
	// change between requests; this ties the label to the model in effect
	// at call time.
	// example: rf
	ModelUsed string `json:"model_used" example:"rf"`
}

// HomeResponse is returned by GET /.
type HomeResponse struct {
	// Liveness message.
	// example: penguin inference API up
	Message string `json:"message" example:"penguin inference API up"`
	// Currently active model, or null before the first successful activation.
	// example: rf
	ActiveModel *string `json:"active_model" example:"rf"`
}

// ModelsResponse is returned by GET /models.
type ModelsResponse struct {
	// Default model from the registry descriptor.
	// example: rf
	DefaultModel string `json:"default_model" example:"rf"`
	// All selectable model names, in descriptor order.
	AvailableModels []string `json:"available_models"`
	// Currently active model, or null before the first successful activation.
	// example: rf
	ActiveModel *string `json:"active_model" example:"rf"`
}

// ErrorResponse is the consistent JSON error payload.
type ErrorResponse struct {
	// Error detail message.
	// example: model not available: xgb
	Detail string `json:"detail" example:"model not available: xgb"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
