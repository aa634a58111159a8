package transcoder

import (
	"reflect"
	"testing"
)

func TestQualityFlags(t *testing.T) {
	tests := []struct {
		tier string
		want []string
	}{
		{"best", []string{"-crf", "15", "-b:v", "0"}},
		{"good", []string{"-crf", "30", "-b:v", "0"}},
		{"fast", []string{"-crf", "40", "-b:v", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			if got := QualityFlags(tt.tier); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("QualityFlags(%q) = %v, want %v", tt.tier, got, tt.want)
			}
		})
	}
}

func TestQualityFlagsUnknownTierFallsBackToGood(t *testing.T) {
	good := QualityFlags(QualityGood)
	for _, tier := range []string{"", "BEST", "ultra", "medium", " good"} {
		if got := QualityFlags(tier); !reflect.DeepEqual(got, good) {
			t.Errorf("QualityFlags(%q) = %v, want %v", tier, got, good)
		}
	}
}

func TestQualityFlagsReturnsFreshSlice(t *testing.T) {
	a := QualityFlags(QualityBest)
	a[1] = "99"
	if b := QualityFlags(QualityBest); b[1] != "15" {
		t.Fatalf("QualityFlags shares its backing array: %v", b)
	}
}
