package database

import (
	"reflect"
	"testing"
)

func TestSettingsUpsertAndFold(t *testing.T) {
	gdb := newTestDB(t)

	input := map[string]string{
		"whatsapp_number": "+628123456789",
		"site_title":      "Safinaland",
		"hero_text":       "Find your home",
	}
	if err := gdb.UpsertSettings(input); err != nil {
		t.Fatal(err)
	}

	got, err := gdb.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, input) {
		t.Errorf("settings = %v, want %v", got, input)
	}
}

func TestSettingsUpsertIdempotent(t *testing.T) {
	gdb := newTestDB(t)

	input := map[string]string{"site_title": "Safinaland", "footer": "2024"}
	for i := 0; i < 2; i++ {
		if err := gdb.UpsertSettings(input); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}

	got, err := gdb.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, input) {
		t.Errorf("settings after two passes = %v, want %v", got, input)
	}
}

func TestSettingsUpsertOverwrites(t *testing.T) {
	gdb := newTestDB(t)

	if err := gdb.UpsertSettings(map[string]string{"site_title": "Old"}); err != nil {
		t.Fatal(err)
	}
	if err := gdb.UpsertSettings(map[string]string{"site_title": "New", "extra": "kept"}); err != nil {
		t.Fatal(err)
	}

	got, err := gdb.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got["site_title"] != "New" {
		t.Errorf("site_title = %q, want New", got["site_title"])
	}
	if got["extra"] != "kept" {
		t.Errorf("extra = %q, want kept", got["extra"])
	}
}

func TestGetAllSettingsEmpty(t *testing.T) {
	gdb := newTestDB(t)

	got, err := gdb.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("settings = %v, want empty map", got)
	}
}
