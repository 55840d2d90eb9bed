package workout

import (
	"encoding/json"
	"math"
)

const (
	RowStatusOK = "OK"
	// RowColumns is the number of columns of a workout row in the Log sheet
	RowColumns = 13
)

// Row is a single logged set, as stored in the Log sheet.
// Column order: date, session id, exercise, lift code, set index, weight,
// reps, rir, <empty>, volume, e1RM, session number, status.
type Row struct {
	Date          string
	SessionID     string
	Exercise      string
	LiftCode      string
	SetIndex      int
	Weight        int
	Reps          int
	RIR           int
	Volume        float64
	E1RM          float64
	SessionNumber any
	Status        string
}

func NewRow(sessionID string, sessionNumber any, exercise, liftCode string, setIndex int, set Set) Row {
	return Row{
		Date:          sessionID,
		SessionID:     sessionID,
		Exercise:      exercise,
		LiftCode:      liftCode,
		SetIndex:      setIndex,
		Weight:        set.Weight,
		Reps:          set.Reps,
		RIR:           set.RIR,
		Volume:        float64(set.Weight) * float64(set.Reps),
		E1RM:          round2(EstimatedOneRepMax(set.Weight, set.Reps)),
		SessionNumber: sessionNumber,
		Status:        RowStatusOK,
	}
}

// Values returns the row cells in sheet column order
func (r Row) Values() []any {
	return []any{
		r.Date,
		r.SessionID,
		r.Exercise,
		r.LiftCode,
		r.SetIndex,
		r.Weight,
		r.Reps,
		r.RIR,
		"",
		r.Volume,
		r.E1RM,
		r.SessionNumber,
		r.Status,
	}
}

// MarshalJSON encodes the row as a plain array, same as it lands in the sheet
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}

// EstimatedOneRepMax uses the Epley formula
func EstimatedOneRepMax(weight, reps int) float64 {
	return float64(weight) * (1 + float64(reps)/30)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RowsValues converts rows into the 2D values payload of the sheets API
func RowsValues(rows []Row) [][]any {
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, r.Values())
	}
	return values
}
