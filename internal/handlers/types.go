package handlers

// PredictionResponse is the JSON body of a successful prediction.
type PredictionResponse struct {
	PredictedClass string  `json:"predicted_class"`
	Confidence     float32 `json:"confidence"`
	Bin            string  `json:"bin"`
	ServoAngle     int     `json:"servo_angle"`
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ErrorResponse is the body attached to 4xx/5xx responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
