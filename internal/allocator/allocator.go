// Package allocator implements best-fit parking slot selection.  It
// operates on plain slices of slots; transactional concerns (locking
// the candidate rows, claiming the winner) belong to the caller.
package allocator

import (
	"strconv"
	"strings"

	"github.com/iliyamo/smart-parking/internal/model"
)

// Safety margins applied to a vehicle footprint when a new slot has
// to be synthesized because nothing fits.
const (
	LengthMarginM = 0.5
	WidthMarginM  = 0.3
)

// DefaultCodePrefix is the row prefix used for synthesized slot codes.
const DefaultCodePrefix = "A"

// BestFit selects the smallest available slot that fits a vehicle of
// the given footprint.  Only slots with status available are
// considered.  Among fitting candidates the one with the minimum
// floor area wins; ties are broken by input order, first encountered
// wins.  When lengthM or widthM is not positive the footprint is
// treated as unknown and the smallest available slot overall is
// returned, so allocation still succeeds for vehicles whose
// dimensions were never recorded.  The second return value is false
// when no candidate exists.
func BestFit(slots []model.Slot, lengthM, widthM float64) (model.Slot, bool) {
	sized := lengthM > 0 && widthM > 0
	var best model.Slot
	found := false
	for _, s := range slots {
		if s.Status != model.SlotAvailable {
			continue
		}
		if sized && !s.Fits(lengthM, widthM) {
			continue
		}
		if !found || s.Area() < best.Area() {
			best = s
			found = true
		}
	}
	return best, found
}

// Synthesize builds a new slot sized for the given footprint plus
// the fixed safety margins.  The caller assigns the code and
// persists the slot; it comes back with status available because the
// claim step is a separate, atomic operation.
func Synthesize(lengthM, widthM float64, areaID uint64) model.Slot {
	return model.Slot{
		LengthM: lengthM + LengthMarginM,
		WidthM:  widthM + WidthMarginM,
		AreaID:  areaID,
		Status:  model.SlotAvailable,
	}
}

// NextCode mints the next slot code under a prefix.  It scans the
// existing codes for the highest numeric suffix carried by the
// prefix and returns prefix + (max+1); with no matching codes the
// numbering starts at 1.  Codes whose suffix is not purely numeric
// are ignored, so administratively named slots ("A-VIP") never
// disturb the sequence.
func NextCode(existing []string, prefix string) string {
	max := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return prefix + strconv.Itoa(max+1)
}
