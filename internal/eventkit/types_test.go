package eventkit

import (
	"testing"
	"time"
)

func TestDateComponentsTime(t *testing.T) {
	tests := []struct {
		name    string
		dc      DateComponents
		want    time.Time
		wantErr bool
	}{
		{
			name: "fully specified",
			dc:   DateComponents{Year: 2024, Month: 12, Day: 25, Hour: 18, Minute: 30, Second: 15},
			want: time.Date(2024, 12, 25, 18, 30, 15, 0, time.Local),
		},
		{
			name: "unset time components default to zero",
			dc:   DateComponents{Year: 2024, Month: 12, Day: 25, Hour: ComponentUnset, Minute: ComponentUnset, Second: ComponentUnset},
			want: time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
		},
		{
			name: "unset seconds only",
			dc:   DateComponents{Year: 2024, Month: 6, Day: 1, Hour: 9, Minute: 15, Second: ComponentUnset},
			want: time.Date(2024, 6, 1, 9, 15, 0, 0, time.Local),
		},
		{
			name:    "missing year",
			dc:      DateComponents{Year: 0, Month: 12, Day: 25},
			wantErr: true,
		},
		{
			name:    "month out of range",
			dc:      DateComponents{Year: 2024, Month: 13, Day: 1},
			wantErr: true,
		},
		{
			name:    "day does not exist in month",
			dc:      DateComponents{Year: 2024, Month: 2, Day: 30},
			wantErr: true,
		},
		{
			name:    "hour out of range",
			dc:      DateComponents{Year: 2024, Month: 2, Day: 10, Hour: 24},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dc.Time(time.Local)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Time failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
