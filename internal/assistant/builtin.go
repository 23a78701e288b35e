package assistant

// builtinEntries is ordered from most specific to least specific: a key that
// contains another key is always declared first, and "age" comes last because
// it also occurs inside words like "average" and "stage".
var builtinEntries = []Entry{
	{"resting bp", "Resting BP (Araam ke waqt ka Blood Pressure). Normal is 120/80.\nUrdu: Ye apka aam BP hai. Agar upar wala number 130 se ziada ho to khatra hai."},
	{"trestbps", "Resting BP (Khoon ka dabao). See 'Resting BP'.\nUrdu: Upar wala number likhein (Systolic)."},
	{"bp", "Blood Pressure (Khoon ka Dabao). Normal: 120. High Risk: 140+.\nUrdu: BP check karein. Agar 130 ya 140 se ziada hai to 'High' hai."},

	{"max heart rate", "Max Heart Rate (Ziada se ziada dharkan). Usual formula: 220 - Age. Low max HR during exercise can be risky.\nUrdu: Warzish ke doran dil ki raftaar kahan tak jati hai? 150 ya 170 tak hona chahiye."},
	{"thalach", "Max Heart Rate. See 'Max Heart Rate'."},
	{"heart rate", "Heart Rate (Dil ki Dharkan). Normal is 60-100 beats per minute.\nUrdu: Ek minute mein dil kitni baar dharkta hai? (Aam tor par 72)."},

	{"chest pain type", "Select Pain Type (Dard ki qisam chunein):\nTA: Exertional pain (Kaam se dard).\nATA: Unusual pain.\nNAP: Unrelated to heart (Jaisay pathon ka dard).\nASY: Silent (Dard nahi hota magar masla hai)."},
	{"chest pain", "Chest Pain Types (Seenay ka dard):\n1. TA: Typical Angina (Mehnat se dard).\n2. ATA: Atypical Angina (Dard jo dil jaisa na lagay).\n3. NAP: Non-Anginal (Gais ya maiday ka dard).\n4. ASY: Asymptomatic (Koi dard nahi - Khamosh Khatra/Silent Killer)."},
	{"cp", "Chest Pain Type. See 'Chest Pain'.\nUrdu: Dard ki qisam batayen (TA, ATA, NAP, ASY)."},

	{"resting ecg", "Resting ECG (Dil ki report).\nNormal: All good (Sab theek).\nST: Wave abnormality (Lehron mein masla).\nLVH: Thick heart wall (Dil ke pathay motay hain - High BP se hota hai)."},
	{"restecg", "Resting ECG. See 'Resting ECG'."},
	{"ecg", "Resting ECG. See 'Resting ECG'.\nUrdu: Dil ki bijli ki report."},

	{"fasting bs", "Fasting Blood Sugar (Naashta se pehlay sugar).\nIf > 120 mg/dl: Diabetes Risk (Sugar ka marz).\nUrdu: Agar khaali pait sugar 120 se ziada hai to 'Yes' in choice."},
	{"fbs", "Fasting Blood Sugar. See 'Fasting BS'.\nUrdu: Khaali pait sugar check karein."},

	{"exercise angina", "Exercise Angina (Warzish se dard).\nDo you get chest pain when you walk fast or run?\nUrdu: Kia tez chalne ya bhaagne par seenay mein dard hota hai? (Yes/No)."},
	{"angina", "Angina (Dil ka dard). Pain caused by reduced blood flow.\nUrdu: Jab dil ko khoon kam milta hai to dard hota hai."},

	{"st slope", "ST Slope (ECG ki dhalwaan).\nUp: Normal (Aam halat).\nFlat/Down: Signs of blocked arteries (Ragon mein rukawat ke asaar)."},
	{"slope", "ST Slope. See 'ST Slope'.\nUrdu: ECG wave ki shakal (Up, Flat, Down)."},
	{"oldpeak", "Oldpeak (ST Depression).\nValue: 0 to 6.\nUrdu: Ye number ECG se milta hai. Agar 1.5 ya 2 se ziada ho to dil par boojh hai."},

	{"cholesterol", "Cholesterol (Khoon mein Charbi).\nNormal: < 200 mg/dL.\nHigh: > 240 mg/dL.\nUrdu: Agar 200 se ziada hai to khatra hai. Ye ragon ko band karta hai."},

	{"symptoms", "Symptoms (Alamaat):\n- Chest pain (Seenay mein dard)\n- Shortness of breath (Saans phoolna)\n- Palpitations (Dil ghabrana)"},
	{"prevention", "Prevention (Bachao):\n1. Eat less oil/salt (Kam tail aur namak).\n2. Walk daily (Rozana paidal chalein).\n3. Stop smoking (Tambaku noshi chhor dein)."},
	{"diet", "Diet (Khoraak):\nEat: Fruits, Veggies, Fish (Phal, Sabzi).\nAvoid: Fast food, Sweets, Red meat (Bara gosht, Meetha kam karein)."},
	{"risk", "Risk Factors (Khatra):\nHigh BP, Sugar, Obesity (Motapa), Smoking, Family History (Khandani marz)."},
	{"causes", "Causes (Wajuhaat):\nHigh levels of Cholesterol & BP block the arteries.\nUrdu: Charbi aur BP ki waja se dil ki ragein tang ho jati hain."},
	{"urdu", "Urdu Guide (Rehnumai).\nAsk in English or Roman Urdu about any form field: 'Age', 'BP', 'Cholesterol', 'Chest Pain', 'ECG', 'Oldpeak'.\nUrdu: Kisi bhi lafz ke baray mein poochein, jaisay 'BP kia hai?' ya 'Chest Pain ki qismein'."},

	{"age", "Age (Umar/Ayera). Enter your age in years. \nUrdu: Apni umar likhein (Jaisay 45)."},
}

const builtinDefault = "I'm here to help! Ask about 'Chest Pain', 'BP', 'Sugar', 'Cholesterol', or 'Diet'.\nUrdu: Koi sawal karein, jaisay 'BP kia hai?' ya 'Chest Pain ki qismein'."

// Suggestions are the curated topic labels offered next to the chat input.
var Suggestions = []string{
	"Age",
	"BP (Blood Pressure)",
	"Chest Pain",
	"Sugar (FBS)",
	"ECG",
	"Urdu Guide",
}

// Builtin returns the bundled knowledge base.
func Builtin() *KnowledgeBase {
	kb, err := NewKnowledgeBase(builtinEntries, builtinDefault)
	if err != nil {
		panic("assistant: builtin knowledge base: " + err.Error())
	}
	return kb
}

// BuiltinEntries returns a copy of the bundled entries, in order.
func BuiltinEntries() ([]Entry, string) {
	out := make([]Entry, len(builtinEntries))
	copy(out, builtinEntries)
	return out, builtinDefault
}

// IsSuggestion reports whether label is one of the curated Suggestions.
func IsSuggestion(label string) bool {
	for _, s := range Suggestions {
		if s == label {
			return true
		}
	}
	return false
}
