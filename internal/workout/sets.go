package workout

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Set is a single parsed set, before it becomes a Row
type Set struct {
	Weight int `json:"weight"`
	Reps   int `json:"reps"`
	RIR    int `json:"rir"`
}

// MaxSetsPerChunk bounds the number of sets a single chunk can expand to
const MaxSetsPerChunk = 100

var ErrTooManySets = errors.New("too many sets")

var (
	weightRegex     = regexp.MustCompile(`(?i)(\d+)\s*(lb|lbs)?`)
	multipliedRegex = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*x\s*(\d+)`)
	repsRirRegex    = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
)

// ParseSetPattern parses the sets part of a chunk, after the exercise name.
// Supported forms:
//   - multiplied: "135 10/2x3" -> 3 sets of 10 reps @ 2 RIR
//   - list:       "135 10/2, 8/1" -> one set per reps/rir group
//
// Returns nil when no weight is found, neither form matches, or the chunk
// would expand to more than MaxSetsPerChunk sets.
func ParseSetPattern(segment string) []Set {
	sets, _ := parseSetPattern(segment)
	return sets
}

func parseSetPattern(segment string) ([]Set, error) {
	weightMatch := weightRegex.FindStringSubmatch(segment)
	if weightMatch == nil {
		return nil, nil
	}

	weight, err := strconv.Atoi(weightMatch[1])
	if err != nil {
		return nil, nil
	}
	rest := strings.TrimSpace(strings.Replace(segment, weightMatch[0], "", 1))

	if mult := multipliedRegex.FindStringSubmatch(rest); mult != nil {
		reps, repsErr := strconv.Atoi(mult[1])
		rir, rirErr := strconv.Atoi(mult[2])
		setsCount, setsErr := strconv.Atoi(mult[3])
		if repsErr != nil || rirErr != nil {
			return nil, nil
		}
		// digits only, so Atoi can fail only when out of range
		if setsErr != nil || setsCount > MaxSetsPerChunk {
			return nil, ErrTooManySets
		}

		sets := make([]Set, 0, setsCount)
		for i := 0; i < setsCount; i++ {
			sets = append(sets, Set{Weight: weight, Reps: reps, RIR: rir})
		}
		return sets, nil
	}

	groups := repsRirRegex.FindAllStringSubmatch(rest, MaxSetsPerChunk+1)
	if len(groups) == 0 {
		return nil, nil
	}
	if len(groups) > MaxSetsPerChunk {
		return nil, ErrTooManySets
	}

	sets := make([]Set, 0, len(groups))
	for _, g := range groups {
		reps, repsErr := strconv.Atoi(g[1])
		rir, rirErr := strconv.Atoi(g[2])
		if repsErr != nil || rirErr != nil {
			return nil, nil
		}
		sets = append(sets, Set{Weight: weight, Reps: reps, RIR: rir})
	}

	return sets, nil
}
