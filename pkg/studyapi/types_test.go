package studyapi

import (
	"encoding/json"
	"testing"
)

func TestDateUnmarshalFailsClosed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"date only", `"2026-03-15"`, "2026-03-15"},
		{"rfc3339", `"2026-03-15T10:30:00Z"`, "2026-03-15"},
		{"naive timestamp", `"2026-03-15T10:30:00"`, "2026-03-15"},
		{"null", `null`, ""},
		{"malformed stays unset", `"15/03/2026"`, ""},
		{"garbage stays unset", `"not-a-date"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
				t.Fatal(err)
			}
			if d.String() != tt.want {
				t.Errorf("String() = %q, want %q", d.String(), tt.want)
			}
		})
	}
}

func TestDateMarshalUnsetIsNull(t *testing.T) {
	b, err := json.Marshal(Date{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Errorf("marshaled unset date as %s, want null", b)
	}
}

func TestResponseStatusRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		wire string
		want ResponseStatus
	}{
		{"null", `null`, ResponseNotEvaluated},
		{"true", `true`, ResponseResponder},
		{"false", `false`, ResponseNonResponder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ResponseStatus
			if err := json.Unmarshal([]byte(tt.wire), &s); err != nil {
				t.Fatal(err)
			}
			if s != tt.want {
				t.Errorf("unmarshaled %s as %v, want %v", tt.wire, s, tt.want)
			}
			b, err := json.Marshal(s)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tt.wire {
				t.Errorf("marshaled %v as %s, want %s", s, b, tt.wire)
			}
		})
	}
}
