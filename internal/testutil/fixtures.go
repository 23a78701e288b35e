package testutil

import (
	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/domain"
)

// Assessment options
type AssessmentOption func(*domain.Assessment)

func WithAge(age int) AssessmentOption {
	return func(a *domain.Assessment) { a.Age = age }
}

func WithSex(s domain.Sex) AssessmentOption {
	return func(a *domain.Assessment) { a.Sex = s }
}

func WithChestPain(cp domain.ChestPainType) AssessmentOption {
	return func(a *domain.Assessment) { a.ChestPainType = cp }
}

func WithExerciseAngina(b bool) AssessmentOption {
	return func(a *domain.Assessment) { a.ExerciseAngina = b }
}

func WithSlope(s domain.STSlope) AssessmentOption {
	return func(a *domain.Assessment) { a.STSlope = s }
}

func WithOldpeak(v float64) AssessmentOption {
	return func(a *domain.Assessment) { a.Oldpeak = v }
}

// NewTestAssessment returns the default assessment with opts applied.
func NewTestAssessment(opts ...AssessmentOption) domain.Assessment {
	a := domain.DefaultAssessment()
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// NewTestKnowledgeBase builds a knowledge base from key/answer pairs in the
// given order, with def as the default answer.
func NewTestKnowledgeBase(def string, pairs ...string) *assistant.KnowledgeBase {
	if len(pairs)%2 != 0 {
		panic("testutil: NewTestKnowledgeBase needs key/answer pairs")
	}
	entries := make([]assistant.Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		entries = append(entries, assistant.Entry{Key: pairs[i], Answer: pairs[i+1]})
	}
	kb, err := assistant.NewKnowledgeBase(entries, def)
	if err != nil {
		panic(err)
	}
	return kb
}
