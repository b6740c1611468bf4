package models

import (
	"encoding/json"
	"testing"
)

func TestCents_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cents
		wantErr bool
	}{
		{name: "decimal string", input: `"150.00"`, want: 15000},
		{name: "decimal string with cents", input: `"99.90"`, want: 9990},
		{name: "single fraction digit", input: `"10.5"`, want: 1050},
		{name: "no fraction", input: `"25"`, want: 2500},
		{name: "bare number", input: `150.00`, want: 15000},
		{name: "bare integer", input: `42`, want: 4200},
		{name: "zero", input: `"0.00"`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "negative", input: `"-10.50"`, want: -1050},
		{name: "extra precision rounds up", input: `"1.999"`, want: 200},
		{name: "extra precision rounds down", input: `"1.994"`, want: 199},
		{name: "rounding carries into the whole part", input: `"9.995"`, want: 1000},
		{name: "negative rounds away from zero", input: `"-1.999"`, want: -200},
		{name: "garbage", input: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cents
			err := json.Unmarshal([]byte(tt.input), &c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && c != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.input, c, tt.want)
			}
		})
	}
}

func TestCents_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Cents(15000))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"150.00"` {
		t.Errorf("Marshal(15000) = %s, want \"150.00\"", data)
	}
}

func TestCents_Decimal(t *testing.T) {
	tests := []struct {
		cents Cents
		want  string
	}{
		{15000, "150.00"},
		{9990, "99.90"},
		{5, "0.05"},
		{0, "0.00"},
		{-1050, "-10.50"},
	}

	for _, tt := range tests {
		if got := tt.cents.Decimal(); got != tt.want {
			t.Errorf("Cents(%d).Decimal() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestCents_Format(t *testing.T) {
	tests := []struct {
		cents Cents
		want  string
	}{
		{15000, "R$ 150,00"},
		{9990, "R$ 99,90"},
		{5, "R$ 0,05"},
		{-1050, "-R$ 10,50"},
	}

	for _, tt := range tests {
		if got := tt.cents.Format(); got != tt.want {
			t.Errorf("Cents(%d).Format() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
