package noise

import (
	"context"
	"errors"
	"math"
	"testing"

	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"perlin", Perlin},
		{"simplex", Simplex},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if err != nil {
				t.Fatalf("ParseKind(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("Kind.String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	_, err := ParseKind("worley")
	if err == nil {
		t.Fatal("Expected error for unknown kind, got nil")
	}
	if !errors.Is(err, rcerrors.ErrUnknownNoiseKind) {
		t.Errorf("Expected ErrUnknownNoiseKind, got: %v", err)
	}
}

func TestKindFlagValue(t *testing.T) {
	var k Kind
	if err := k.Set("simplex"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if k != Simplex {
		t.Errorf("Set left kind = %v, want Simplex", k)
	}
	if err := k.Set("garbage"); err == nil {
		t.Error("Expected error setting unknown kind, got nil")
	}
	if k.Type() != "noise" {
		t.Errorf("Type() = %q, want %q", k.Type(), "noise")
	}
}

func TestGenerateRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -3, 10},
		{"negative height", 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(context.Background(), Perlin, 1, tt.width, tt.height)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, rcerrors.ErrInvalidDimensions) {
				t.Errorf("Expected ErrInvalidDimensions, got: %v", err)
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, kind := range []Kind{Perlin, Simplex} {
		t.Run(kind.String(), func(t *testing.T) {
			first, err := Generate(context.Background(), kind, 424242, 32, 48)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			second, err := Generate(context.Background(), kind, 424242, 32, 48)
			if err != nil {
				t.Fatalf("Generate failed on second call: %v", err)
			}

			for y := 0; y < 48; y++ {
				for x := 0; x < 32; x++ {
					if first.At(x, y) != second.At(x, y) {
						t.Fatalf("Sample (%d,%d) differs across runs: %v vs %v",
							x, y, first.At(x, y), second.At(x, y))
					}
				}
			}
		})
	}
}

func TestGenerateMatchesSampler(t *testing.T) {
	// Parallel generation must agree with direct single-threaded sampling.
	field, err := Generate(context.Background(), Simplex, 7, 40, 40)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	sampler, err := NewSampler(Simplex, 7)
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}

	for _, p := range [][2]int{{0, 0}, {39, 0}, {0, 39}, {39, 39}, {13, 27}} {
		if got, want := field.At(p[0], p[1]), sampler.At(p[0], p[1]); got != want {
			t.Errorf("Field.At(%d,%d) = %v, sampler gives %v", p[0], p[1], got, want)
		}
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	a, err := Generate(context.Background(), Perlin, 1, 16, 16)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(context.Background(), Perlin, 2, 16, 16)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	same := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a.At(x, y) == b.At(x, y) {
				same++
			}
		}
	}
	if same == 16*16 {
		t.Error("Fields for different seeds are identical")
	}
}

func TestSamplesAreBounded(t *testing.T) {
	for _, kind := range []Kind{Perlin, Simplex} {
		t.Run(kind.String(), func(t *testing.T) {
			field, err := Generate(context.Background(), kind, 99, 64, 64)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			for y := 0; y < 64; y++ {
				for x := 0; x < 64; x++ {
					v := field.At(x, y)
					if v < -1 || v > 1 || math.IsNaN(v) {
						t.Fatalf("Sample (%d,%d) = %v outside [-1,1]", x, y, v)
					}
				}
			}
		})
	}
}

func TestFieldIsSpatiallyCoherent(t *testing.T) {
	field, err := Generate(context.Background(), Perlin, 42, 64, 64)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// The field must vary (a constant field trivially passes coherence).
	minV, maxV := field.At(0, 0), field.At(0, 0)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := field.At(x, y)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
	}
	if maxV-minV < 1e-9 {
		t.Fatal("Field is constant")
	}

	// Adjacent samples should differ far less than samples half the
	// image apart: coherent noise, not white noise.
	var neighborSum, farSum float64
	var n int
	for y := 0; y < 64; y++ {
		for x := 0; x < 63; x++ {
			neighborSum += math.Abs(field.At(x+1, y) - field.At(x, y))
			farSum += math.Abs(field.At((x+32)%64, (y+32)%64) - field.At(x, y))
			n++
		}
	}
	neighborMean := neighborSum / float64(n)
	farMean := farSum / float64(n)

	if neighborMean >= farMean {
		t.Errorf("Field not coherent: neighbor mean delta %v >= far mean delta %v", neighborMean, farMean)
	}
}

func TestDeriveParamsWithinBands(t *testing.T) {
	for _, seed := range []int64{0, 1, -1, 42, math.MaxInt64, math.MinInt64} {
		frequency, octaves := deriveParams(seed)
		if frequency < minFrequency || frequency > maxFrequency {
			t.Errorf("Seed %d: frequency %v outside [%v, %v]", seed, frequency, minFrequency, maxFrequency)
		}
		if octaves < 1 || octaves > maxOctaves {
			t.Errorf("Seed %d: octaves %d outside [1, %d]", seed, octaves, maxOctaves)
		}
	}
}
