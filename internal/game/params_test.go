package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultParams_Valid(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if p.KickingDistance() != 11 {
		t.Fatalf("expected kicking distance 6+5=11, got %v", p.KickingDistance())
	}
	if p.PlayerKickingDistanceSq != 121 {
		t.Fatalf("expected squared kicking distance 121, got %v", p.PlayerKickingDistanceSq)
	}
	if p.PlayerComfortZoneSq != 3600 {
		t.Fatalf("expected comfort zone sq 3600, got %v", p.PlayerComfortZoneSq)
	}
}

func TestLoadParams_OverridesOnlyGivenKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.json")
	body := `{"GoalWidth": 120, "PlayerKickingDistance": 8, "bRegions": true}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p.GoalWidth != 120 || !p.ShowRegions {
		t.Fatalf("overrides not applied: GoalWidth=%v ShowRegions=%v", p.GoalWidth, p.ShowRegions)
	}
	if p.PlayerKickingDistanceSq != 13*13 {
		t.Fatalf("expected derived kicking range 13^2, got %v", p.PlayerKickingDistanceSq)
	}
	if p.MaxPassingForce != 3.0 {
		t.Fatalf("untouched key should keep default, got %v", p.MaxPassingForce)
	}
}

func TestLoadParams_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	body := "GoalWidth: 140\nMaxShootingForce: 5.5\nbIDs: false\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p.GoalWidth != 140 || p.MaxShootingForce != 5.5 || p.ShowIDs {
		t.Fatalf("yaml overrides not applied: %+v", p)
	}
	if p.MaxPassingForce != 3.0 || p.FrameRate != 60 {
		t.Fatal("keys missing from the yaml file should keep their default")
	}
}

func TestLoadParams_IgnoresUnusedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.json")
	body := `{"WithinRangeOfHome": 15, "WithinRangeOfSupportSpot": 15, "MinPassDist": 100}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("keys the simulation does not read should be ignored: %v", err)
	}
	if p.MinPassDist != 100 {
		t.Fatalf("known keys still apply, got MinPassDist=%v", p.MinPassDist)
	}
}

func TestLoadParams_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"Friction": 0.5}`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadParams(path)
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
	if _, err := LoadParams(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
