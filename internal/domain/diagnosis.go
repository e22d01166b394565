package domain

// Severity is the coarse severity bucket reported by the AI classifier.
type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
	SeverityNA       Severity = "N/A"
)

// DiseaseVerdict is the structured classification result for a leaf/trunk image.
type DiseaseVerdict struct {
	IsHealthy   bool     `json:"isHealthy"`
	DiseaseType string   `json:"diseaseType"`
	Severity    Severity `json:"severity"`
	Confidence  float64  `json:"confidence"` // 0-1
}

// Detection is one hit from the custom YOLO prediction backend.
type Detection struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	Model      string  `json:"model"` // "detection" or "classification"
}

// PredictionResult is the custom prediction backend's response.
type PredictionResult struct {
	Prediction    string      `json:"prediction"`
	Confidence    float64     `json:"confidence"`
	AllDetections []Detection `json:"all_detections,omitempty"`
	TotalDiseases int         `json:"total_diseases"`
}

// Expert is an agricultural expert returned by the experts lookup.
type Expert struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
