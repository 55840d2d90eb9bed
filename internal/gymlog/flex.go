package gymlog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexValue is a request field that can be sent as a JSON number, string or
// boolean. It is echoed back and stored exactly as received.
type FlexValue struct {
	value any // json.Number, string or bool, nil when absent
}

func NumberValue(n json.Number) FlexValue {
	return FlexValue{value: n}
}

func StringValue(s string) FlexValue {
	return FlexValue{value: s}
}

func (f *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		f.value = nil
		return nil
	}

	switch {
	case bytes.Equal(data, []byte("true")):
		f.value = true
		return nil
	case bytes.Equal(data, []byte("false")):
		f.value = false
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.value = s
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("expected number, string or boolean, got %s", data)
	}
	f.value = n
	return nil
}

func (f FlexValue) MarshalJSON() ([]byte, error) {
	if f.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// IsMissing reports whether the value is absent, null, zero, false or an empty string
func (f FlexValue) IsMissing() bool {
	switch v := f.value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case json.Number:
		num, err := v.Float64()
		return err == nil && num == 0
	default:
		return false
	}
}

// Value returns the raw value, as it should be written to the sheet
func (f FlexValue) Value() any {
	return f.value
}

func (f FlexValue) String() string {
	if f.value == nil {
		return ""
	}
	return fmt.Sprint(f.value)
}
