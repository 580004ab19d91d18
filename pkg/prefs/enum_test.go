package prefs

import "testing"

func colorChoices() []Choice {
	return []Choice{
		{Name: "Red", Label: "Red"},
		{Name: "Green", Label: "Green"},
		{Name: "Blue", Label: "Blue"},
	}
}

func TestEnumWritesChoiceName(t *testing.T) {
	store := newFakeStore()
	var v int32
	item := NewEnum("General", "Color", &v, 0, colorChoices())

	item.SetValue(2)
	if err := item.WriteConfig(store); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if got := store.user[entryKey("General", "Color")]; got != "Blue" {
		t.Errorf("stored form = %q, want \"Blue\"", got)
	}
}

func TestEnumReadsNameCaseInsensitively(t *testing.T) {
	store := newFakeStore()
	store.user[entryKey("General", "Color")] = "gReEn"

	var v int32
	item := NewEnum("General", "Color", &v, 0, colorChoices())
	item.ReadConfig(store)

	if v != 1 {
		t.Errorf("index = %d, want 1 (Green)", v)
	}
}

func TestEnumUnknownNameResolvesToDefault(t *testing.T) {
	store := newFakeStore()
	store.user[entryKey("General", "Color")] = "Magenta"

	var v int32
	item := NewEnum("General", "Color", &v, 2, colorChoices())
	item.ReadConfig(store)

	if v != 2 {
		t.Errorf("unknown choice name should resolve to default 2, got %d", v)
	}
}

func TestEnumNumericFallback(t *testing.T) {
	store := newFakeStore()
	store.user[entryKey("General", "Color")] = "1"

	var v int32
	item := NewEnum("General", "Color", &v, 0, colorChoices())
	item.ReadConfig(store)

	if v != 1 {
		t.Errorf("numeric raw value should decode, got %d", v)
	}
}

func TestEnumOutOfRangeIndexWritesNumber(t *testing.T) {
	store := newFakeStore()
	var v int32
	item := NewEnum("General", "Color", &v, 0, colorChoices())

	item.SetValue(9)
	if err := item.WriteConfig(store); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if got := store.user[entryKey("General", "Color")]; got != "9" {
		t.Errorf("stored form = %q, want \"9\"", got)
	}
}

func TestEnumValueForChoice(t *testing.T) {
	var v int32
	item := NewEnum("General", "Color", &v, 0, colorChoices())

	if got := item.ValueForChoice("Red"); got != "Red" {
		t.Errorf("unset auxiliary value = %q, want the name back", got)
	}
	item.SetValueForChoice("Red", "#ff0000")
	if got := item.ValueForChoice("red"); got != "#ff0000" {
		t.Errorf("auxiliary value = %q, want \"#ff0000\"", got)
	}
}
