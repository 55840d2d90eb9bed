package gymlog_test

import (
	"encoding/json"
	"testing"

	"github.com/2beens/gymsheets/internal/gymlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexValue_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		expectedValue any
		expectMissing bool
	}{
		{name: "number", body: `{"weight":180.5}`, expectedValue: json.Number("180.5")},
		{name: "integer", body: `{"weight":3}`, expectedValue: json.Number("3")},
		{name: "string", body: `{"weight":"180 lb"}`, expectedValue: "180 lb"},
		{name: "numeric string", body: `{"weight":"0"}`, expectedValue: "0"},
		{name: "zero", body: `{"weight":0}`, expectedValue: json.Number("0"), expectMissing: true},
		{name: "zero float", body: `{"weight":0.0}`, expectedValue: json.Number("0.0"), expectMissing: true},
		{name: "empty string", body: `{"weight":""}`, expectedValue: "", expectMissing: true},
		{name: "null", body: `{"weight":null}`, expectedValue: nil, expectMissing: true},
		{name: "absent", body: `{}`, expectedValue: nil, expectMissing: true},
		{name: "true", body: `{"weight":true}`, expectedValue: true},
		{name: "false", body: `{"weight":false}`, expectedValue: false, expectMissing: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var req gymlog.LogWeightRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			assert.Equal(t, tc.expectedValue, req.Weight.Value())
			assert.Equal(t, tc.expectMissing, req.Weight.IsMissing())
		})
	}
}

func TestFlexValue_UnmarshalJSON_Invalid(t *testing.T) {
	for _, body := range []string{`{"weight":[1]}`, `{"weight":{"v":1}}`} {
		var req gymlog.LogWeightRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestFlexValue_MarshalJSON(t *testing.T) {
	row := [][]any{{"2024-05-01", gymlog.NumberValue("181.2").Value()}}
	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `[["2024-05-01",181.2]]`, string(b))

	b, err = json.Marshal(struct {
		A gymlog.FlexValue `json:"a"`
		B gymlog.FlexValue `json:"b"`
		C gymlog.FlexValue `json:"c"`
	}{
		A: gymlog.NumberValue("3"),
		B: gymlog.StringValue("hard"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":"hard","c":null}`, string(b))
}

func TestFlexValue_String(t *testing.T) {
	assert.Equal(t, "", gymlog.FlexValue{}.String())
	assert.Equal(t, "8", gymlog.NumberValue("8").String())
	assert.Equal(t, "easy", gymlog.StringValue("easy").String())
}
