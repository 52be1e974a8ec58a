package allocator

import (
	"strconv"
	"testing"

	"github.com/iliyamo/smart-parking/internal/model"
)

func slot(id uint64, code string, l, w float64, st model.SlotStatus) model.Slot {
	return model.Slot{ID: id, Code: code, LengthM: l, WidthM: w, AreaID: 1, Status: st}
}

func TestBestFit(t *testing.T) {
	tests := []struct {
		name     string
		slots    []model.Slot
		lengthM  float64
		widthM   float64
		wantCode string
		wantOK   bool
	}{
		{
			name: "picks minimum area among fitting slots",
			slots: []model.Slot{
				slot(1, "A1", 6.0, 3.0, model.SlotAvailable), // area 18
				slot(2, "A2", 5.0, 2.5, model.SlotAvailable), // area 12.5
				slot(3, "A3", 5.5, 2.6, model.SlotAvailable), // area 14.3
			},
			lengthM: 4.5, widthM: 2.0,
			wantCode: "A2", wantOK: true,
		},
		{
			name: "too small slots are excluded even when smaller by area",
			slots: []model.Slot{
				slot(1, "A1", 3.5, 1.8, model.SlotAvailable), // fits nothing below
				slot(2, "A2", 5.0, 2.5, model.SlotAvailable),
			},
			lengthM: 4.5, widthM: 2.0,
			wantCode: "A2", wantOK: true,
		},
		{
			name: "both dimensions must fit, no rotation",
			slots: []model.Slot{
				// plenty of area but too narrow
				slot(1, "A1", 10.0, 1.9, model.SlotAvailable),
			},
			lengthM: 4.5, widthM: 2.0,
			wantOK: false,
		},
		{
			name: "reserved and occupied slots are never candidates",
			slots: []model.Slot{
				slot(1, "A1", 5.0, 2.5, model.SlotReserved),
				slot(2, "A2", 5.0, 2.5, model.SlotOccupied),
			},
			lengthM: 4.5, widthM: 2.0,
			wantOK: false,
		},
		{
			name: "equal area tie broken by input order",
			slots: []model.Slot{
				slot(7, "B4", 5.0, 2.5, model.SlotAvailable),
				slot(3, "A9", 2.5, 5.0, model.SlotAvailable), // same area, later in input
			},
			lengthM: 2.0, widthM: 2.0,
			wantCode: "B4", wantOK: true,
		},
		{
			name: "unknown footprint falls back to smallest available",
			slots: []model.Slot{
				slot(1, "A1", 6.0, 3.0, model.SlotAvailable),
				slot(2, "A2", 4.0, 2.0, model.SlotAvailable),
			},
			lengthM: 0, widthM: 0,
			wantCode: "A2", wantOK: true,
		},
		{
			name:    "empty input",
			slots:   nil,
			lengthM: 4.5, widthM: 2.0,
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestFit(tt.slots, tt.lengthM, tt.widthM)
			if ok != tt.wantOK {
				t.Fatalf("BestFit() ok=%v want %v", ok, tt.wantOK)
			}
			if ok && got.Code != tt.wantCode {
				t.Errorf("BestFit() code=%q want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestBestFitReturnsFittingSlot(t *testing.T) {
	// Whatever slot comes back must actually fit the request.
	slots := []model.Slot{
		slot(1, "A1", 4.4, 2.2, model.SlotAvailable),
		slot(2, "A2", 5.2, 2.4, model.SlotAvailable),
		slot(3, "A3", 4.6, 2.1, model.SlotAvailable),
	}
	got, ok := BestFit(slots, 4.5, 2.0)
	if !ok {
		t.Fatal("expected a slot, got none")
	}
	if !got.Fits(4.5, 2.0) {
		t.Errorf("returned slot %q (%gx%g) does not fit 4.5x2.0", got.Code, got.LengthM, got.WidthM)
	}
}

func TestSynthesize(t *testing.T) {
	s := Synthesize(4.5, 2.0, 1)
	if s.LengthM != 5.0 {
		t.Errorf("LengthM = %g, want 5.0", s.LengthM)
	}
	if s.WidthM != 2.3 {
		t.Errorf("WidthM = %g, want 2.3", s.WidthM)
	}
	if s.Status != model.SlotAvailable {
		t.Errorf("Status = %q, want available", s.Status)
	}
	if s.AreaID != 1 {
		t.Errorf("AreaID = %d, want 1", s.AreaID)
	}
}

func TestNextCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   string
		want     string
	}{
		{"empty starts at 1", nil, "A", "A1"},
		{"continues after max", []string{"A1", "A2", "A7", "A3"}, "A", "A8"},
		{"other prefixes ignored", []string{"B9", "A2"}, "A", "A3"},
		{"non-numeric suffixes ignored", []string{"A-VIP", "AX", "A4"}, "A", "A5"},
		{"only foreign codes", []string{"B1", "C2"}, "A", "A1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextCode(tt.existing, tt.prefix); got != tt.want {
				t.Errorf("NextCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextCodeMonotonic(t *testing.T) {
	// Allocating N codes in sequence yields strictly increasing suffixes.
	codes := []string{"A3"}
	prev := 3
	for i := 0; i < 10; i++ {
		next := NextCode(codes, "A")
		n, err := strconv.Atoi(next[1:])
		if err != nil {
			t.Fatalf("bad code %q: %v", next, err)
		}
		if n <= prev {
			t.Fatalf("suffix %d not greater than previous %d", n, prev)
		}
		for _, c := range codes {
			if c == next {
				t.Fatalf("code %q already in use", next)
			}
		}
		codes = append(codes, next)
		prev = n
	}
}
