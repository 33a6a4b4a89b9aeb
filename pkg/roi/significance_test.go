package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quallaa/quallaa-cli/pkg/models"
)

func TestSignificance(t *testing.T) {
	tests := []struct {
		name        string
		roi         float64
		ci          models.ConfidenceInterval
		wantSig     bool
		wantPBelow  float64
		wantPAtLeast float64
	}{
		{
			name:       "large effect with tight interval",
			roi:        50,
			ci:         models.ConfidenceInterval{Lower: 45, Upper: 55},
			wantSig:    true,
			wantPBelow: 0.001,
		},
		{
			name:         "small effect with wide interval",
			roi:          2,
			ci:           models.ConfidenceInterval{Lower: -48, Upper: 52},
			wantSig:      false,
			wantPAtLeast: 0.5,
		},
		{
			name:       "degenerate interval nonzero effect",
			roi:        10,
			ci:         models.ConfidenceInterval{Lower: 10, Upper: 10},
			wantSig:    true,
			wantPBelow: 1e-12,
		},
		{
			name:         "degenerate interval zero effect",
			roi:          0,
			ci:           models.ConfidenceInterval{},
			wantSig:      false,
			wantPAtLeast: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Significance(tt.roi, tt.ci, DefaultAlpha)
			assert.Equal(t, tt.wantSig, sig.IsSignificant)
			if tt.wantPBelow > 0 {
				assert.Less(t, sig.PValue, tt.wantPBelow)
			}
			if tt.wantPAtLeast > 0 {
				assert.GreaterOrEqual(t, sig.PValue, tt.wantPAtLeast)
			}
		})
	}
}

func TestSignificance_InvalidAlphaFallsBack(t *testing.T) {
	sig := Significance(50, models.ConfidenceInterval{Lower: 45, Upper: 55}, -1)
	assert.True(t, sig.IsSignificant)
}
