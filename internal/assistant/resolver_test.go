package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKB(t *testing.T, def string, entries ...Entry) *KnowledgeBase {
	t.Helper()
	kb, err := NewKnowledgeBase(entries, def)
	require.NoError(t, err)
	return kb
}

func TestResolve_FirstDeclaredKeyWins(t *testing.T) {
	bpFirst := mustKB(t, "fallback",
		Entry{Key: "bp", Answer: "about bp"},
		Entry{Key: "cholesterol", Answer: "about cholesterol"},
	)
	cholFirst := mustKB(t, "fallback",
		Entry{Key: "cholesterol", Answer: "about cholesterol"},
		Entry{Key: "bp", Answer: "about bp"},
	)
	q := "what about my bp and cholesterol"

	assert.Equal(t, Match{Key: "bp", Answer: "about bp"}, Resolve(bpFirst, q))
	assert.Equal(t, Match{Key: "cholesterol", Answer: "about cholesterol"}, Resolve(cholFirst, q))
}

func TestResolve_NoMatchReturnsDefault(t *testing.T) {
	kb := Builtin()

	m := Resolve(kb, "xyz nonsense")

	assert.True(t, m.Default)
	assert.Empty(t, m.Key)
	assert.Equal(t, kb.Default(), m.Answer)
}

func TestResolve_DefaultKeyIsNeverMatched(t *testing.T) {
	kb := Builtin()
	m := Resolve(kb, "default")
	assert.True(t, m.Default)
}

func TestResolve_NormalizesQuery(t *testing.T) {
	kb := Builtin()

	m := Resolve(kb, "   What is CHOLESTEROL?  ")

	assert.Equal(t, "cholesterol", m.Key)
	assert.Contains(t, m.Answer, "Khoon mein Charbi")
}

func TestResolve_BuiltinSpecificKeysWin(t *testing.T) {
	kb := Builtin()
	cases := map[string]string{
		"my max heart rate is 150":      "max heart rate",
		"resting heart rate":            "heart rate",
		"which chest pain type is mine": "chest pain type",
		"chest pain after meals":        "chest pain",
		"resting ecg shows LVH":         "resting ecg",
		"what does st slope flat mean":  "st slope",
		"exercise angina yes or no":     "exercise angina",
		"trestbps value":                "trestbps",
		"resting bp 130":                "resting bp",
		"is my bp high":                 "bp",
		"fasting bs over 120":           "fasting bs",
		"oldpeak 2.5":                   "oldpeak",
		"prevention tips":               "prevention",
	}
	for q, key := range cases {
		assert.Equal(t, key, Resolve(kb, q).Key, q)
	}
}

func TestResolve_AgeInsideWordsDoesNotWin(t *testing.T) {
	kb := Builtin()
	cases := map[string]string{
		"what is the average cholesterol": "cholesterol",
		"stage of chest pain":             "chest pain",
		"average bp for my age":           "bp",
		"what age should i start":         "age",
	}
	for q, key := range cases {
		assert.Equal(t, key, Resolve(kb, q).Key, q)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	kb := Builtin()
	first := Resolve(kb, "diet and risk")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Resolve(kb, "diet and risk"))
	}
	assert.Equal(t, "diet", first.Key)
}

func TestBuiltin_SuggestionsResolveToNonDefault(t *testing.T) {
	kb := Builtin()
	for _, label := range Suggestions {
		m := Resolve(kb, label)
		assert.False(t, m.Default, "suggestion %q fell through to the default", label)
	}
}

func TestBuiltin_HasNoShadowedKeys(t *testing.T) {
	assert.Empty(t, Builtin().Shadowed())
}

func TestBuiltin_OrderIsPinned(t *testing.T) {
	var keys []string
	for _, e := range Builtin().Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{
		"resting bp", "trestbps", "bp",
		"max heart rate", "thalach", "heart rate",
		"chest pain type", "chest pain", "cp",
		"resting ecg", "restecg", "ecg",
		"fasting bs", "fbs",
		"exercise angina", "angina",
		"st slope", "slope", "oldpeak",
		"cholesterol",
		"symptoms", "prevention", "diet", "risk", "causes", "urdu",
		"age",
	}, keys)
}
