package workout

import (
	"regexp"
	"strings"
)

const (
	commandDelimiter = ";"

	DropReasonNoExerciseName = "no exercise name"
	DropReasonNoSets         = "no sets"
	DropReasonTooManySets    = "too many sets"
)

// exercise name is everything up to the first whitespace followed by a digit
var exerciseNameRegex = regexp.MustCompile(`^(.+?)\s+\d`)

// DroppedChunk is a command chunk that could not be turned into rows
type DroppedChunk struct {
	Chunk  string `json:"chunk"`
	Reason string `json:"reason"`
}

type Result struct {
	Rows    []Row
	Dropped []DroppedChunk
}

// ParseWorkout parses a command like "bench 135 10/2x3; squat 225 5/1, 5/0"
// into rows. Unparseable chunks are dropped silently.
func ParseWorkout(text, sessionID string, sessionNumber any) []Row {
	return Parse(text, sessionID, sessionNumber).Rows
}

// Parse does the same as ParseWorkout, but also reports the dropped chunks.
func Parse(text, sessionID string, sessionNumber any) Result {
	var result Result

	for _, chunk := range splitChunks(text) {
		exMatch := exerciseNameRegex.FindStringSubmatch(chunk)
		if exMatch == nil {
			result.Dropped = append(result.Dropped, DroppedChunk{Chunk: chunk, Reason: DropReasonNoExerciseName})
			continue
		}

		rawName := strings.TrimSpace(exMatch[1])
		canonical := Canonicalize(rawName)
		liftCode := LiftCode(canonical)

		pattern := strings.TrimSpace(strings.Replace(chunk, rawName, "", 1))
		sets, err := parseSetPattern(pattern)
		if err != nil {
			result.Dropped = append(result.Dropped, DroppedChunk{Chunk: chunk, Reason: DropReasonTooManySets})
			continue
		}
		if sets == nil {
			result.Dropped = append(result.Dropped, DroppedChunk{Chunk: chunk, Reason: DropReasonNoSets})
			continue
		}

		for i, set := range sets {
			result.Rows = append(result.Rows, NewRow(sessionID, sessionNumber, canonical, liftCode, i+1, set))
		}
	}

	return result
}

func splitChunks(text string) []string {
	var chunks []string
	for _, c := range strings.Split(text, commandDelimiter) {
		if c = strings.TrimSpace(c); c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}
