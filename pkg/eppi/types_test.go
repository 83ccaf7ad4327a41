package eppi

import (
	"encoding/json"
	"testing"
)

func TestLooseValueUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{name: "string", data: `"2022"`, want: "2022"},
		{name: "integer", data: `2022`, want: "2022"},
		{name: "float", data: `2022.0`, want: "2022.0"},
		{name: "null", data: `null`, want: ""},
		{name: "empty string", data: `""`, want: ""},
		{name: "object rejected", data: `{"a":1}`, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var v LooseValue
			err := json.Unmarshal([]byte(tc.data), &v)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tc.data, err, tc.wantErr)
			}
			if !tc.wantErr && v.String() != tc.want {
				t.Fatalf("Unmarshal(%s) = %q, want %q", tc.data, v, tc.want)
			}
		})
	}
}

func TestRecordUnmarshalMixedYear(t *testing.T) {
	t.Parallel()

	data := `{"itemId": 7, "title": "A Study", "year": 2022}`
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if rec.ItemID != 7 || rec.Year.String() != "2022" {
		t.Fatalf("record = %+v, want itemId 7 and year 2022", rec)
	}
}
