package domain

// ReferenceRange is one line of the normal health parameters reference.
type ReferenceRange struct {
	Label string
	Value string
}

// NormalRanges are general reference ranges for a healthy adult.
var NormalRanges = []ReferenceRange{
	{Label: "Blood Pressure (resting)", Value: "Around 120/80 mm Hg"},
	{Label: "Resting BP (trestbps)", Value: "90–120 mm Hg"},
	{Label: "Total Cholesterol (chol)", Value: "< 200 mg/dL"},
	{Label: "Fasting Blood Sugar (fbs)", Value: "< 100 mg/dL (No if > 120)"},
	{Label: "Max Heart Rate (thalach)", Value: "≈ 220 − age (bpm)"},
	{Label: "ST Depression (oldpeak)", Value: "0.0 to 1.0"},
	{Label: "Chest Pain (cp)", Value: "No typical angina during exercise"},
	{Label: "Resting ECG (restecg)", Value: "Normal"},
	{Label: "Exercise Angina (exang)", Value: "No"},
	{Label: "ST Slope (slope)", Value: "Up"},
}
