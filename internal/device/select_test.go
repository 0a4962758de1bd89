package device

import "testing"

func TestResolveEmptyFallsBackToDefault(t *testing.T) {
	def := Info{Name: "Default Device"}
	got, err := Resolve(nil, "", def)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != def.Name {
		t.Fatalf("got %q, want default %q", got.Name, def.Name)
	}
}

func TestResolveByIndex(t *testing.T) {
	infos := []Info{{Index: 0, Name: "A"}, {Index: 1, Name: "B"}}
	got, err := Resolve(infos, "1", Info{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "B" {
		t.Fatalf("got %q, want B", got.Name)
	}
}

func TestResolveBySubstring(t *testing.T) {
	infos := []Info{{Index: 0, Name: "Scarlett 18i20"}, {Index: 1, Name: "Built-in Output"}}
	got, err := Resolve(infos, "scarlett", Info{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Index != 0 {
		t.Fatalf("got index %d, want 0", got.Index)
	}
}

func TestResolveNoMatchErrors(t *testing.T) {
	infos := []Info{{Index: 0, Name: "A"}}
	if _, err := Resolve(infos, "nonexistent", Info{}); err == nil {
		t.Fatal("expected error for unmatched device name")
	}
}

func TestValidateMonitorChannelsRequiresAdjacent(t *testing.T) {
	if err := ValidateMonitorChannels(0, 2, 4); err == nil {
		t.Fatal("expected error: monitor_end must be monitor_start+1")
	}
}

func TestValidateMonitorChannelsRequiresInRange(t *testing.T) {
	if err := ValidateMonitorChannels(3, 4, 4); err == nil {
		t.Fatal("expected error: monitor_end must be < numOutputChannels")
	}
}

func TestValidateMonitorChannelsAccepts(t *testing.T) {
	if err := ValidateMonitorChannels(0, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
