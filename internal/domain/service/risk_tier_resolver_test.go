package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
)

func TestRiskTierResolver_Resolve(t *testing.T) {
	r := service.NewRiskTierResolver()

	tests := []struct {
		score int
		want  string
	}{
		{850, "excellent"},
		{750, "excellent"},
		{749, "good"},
		{680, "good"},
		{679, "fair"},
		{620, "fair"},
		{619, "poor"},
		{550, "poor"},
		{549, "bad"},
		{300, "bad"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Resolve(tt.score).Name(), "score %d", tt.score)
	}
}

func TestRiskTierResolver_UnmatchedScoreIsBad(t *testing.T) {
	r := service.NewRiskTierResolver()

	assert.Equal(t, "bad", r.Resolve(0).Name())
	assert.Equal(t, "bad", r.Resolve(900).Name())
}
