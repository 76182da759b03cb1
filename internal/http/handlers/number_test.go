package handlers

import (
	"encoding/json"
	"testing"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{`3`, 3, false},
		{`99.9`, 99.9, false},
		{`"3"`, 3, false},
		{`" 99.9 "`, 99.9, false},
		{`"-2"`, -2, false},
		{`null`, 0, true},
		{`"muitos"`, 0, true},
		{`true`, 0, true},
		{`""`, 0, true},
	}
	for _, tc := range cases {
		var n Number
		err := json.Unmarshal([]byte(tc.in), &n)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s): expected error, got %v", tc.in, n)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s): unexpected error %v", tc.in, err)
			continue
		}
		if n.Float() != tc.want {
			t.Errorf("Unmarshal(%s) = %v, want %v", tc.in, n.Float(), tc.want)
		}
	}
}

func TestNumber_IntTruncates(t *testing.T) {
	var n Number
	if err := json.Unmarshal([]byte(`3.9`), &n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Int() != 3 {
		t.Fatalf("Int() = %d, want 3", n.Int())
	}
}
