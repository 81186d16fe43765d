package health

import "testing"

func TestOverallOnEmptyMonitorIsUnknown(t *testing.T) {
	if got := NewMonitor().Overall(); got != Unknown {
		t.Fatalf("Overall() = %q, want %q", got, Unknown)
	}
}

func TestOverallReturnsWorstStatus(t *testing.T) {
	tests := []struct {
		name   string
		checks []Status
		want   Status
	}{
		{"all healthy", []Status{Healthy, Healthy}, Healthy},
		{"one degraded", []Status{Healthy, Degraded, Healthy}, Degraded},
		{"unhealthy beats degraded", []Status{Degraded, Unhealthy}, Unhealthy},
		{"unknown beats unhealthy", []Status{Unhealthy, Unknown}, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor()
			for i, s := range tt.checks {
				m.record(Check{Name: string(rune('a' + i)), Status: s})
			}
			if got := m.Overall(); got != tt.want {
				t.Fatalf("Overall() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{Healthy, Degraded, Unhealthy, Unknown} {
		if !s.IsValid() {
			t.Fatalf("IsValid(%q) = false, want true", s)
		}
	}
	for _, s := range []Status{"garbage", "", "ok"} {
		if s.IsValid() {
			t.Fatalf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestRecordCoercesInvalidStatus(t *testing.T) {
	m := NewMonitor()
	m.record(Check{Name: CheckWindows, Status: "bogus"})

	all := m.All()
	if len(all) != 1 || all[0].Status != Unhealthy {
		t.Fatalf("All() = %+v, want one unhealthy check", all)
	}
	if all[0].UpdatedAt.IsZero() {
		t.Fatal("record should stamp UpdatedAt")
	}
}

func TestRecordKeepsFirstSeenOrder(t *testing.T) {
	m := NewMonitor()
	m.record(Check{Name: CheckZOrder, Status: Healthy})
	m.record(Check{Name: CheckMonitors, Status: Healthy})
	m.record(Check{Name: CheckZOrder, Status: Degraded, Message: "again"})

	all := m.All()
	if len(all) != 2 || all[0].Name != CheckZOrder || all[1].Name != CheckMonitors {
		t.Fatalf("All() order = %+v", all)
	}
	if all[0].Status != Degraded || all[0].Message != "again" {
		t.Fatalf("latest record not kept: %+v", all[0])
	}
}
