package dispatch

import (
	"strings"
	"testing"
)

func TestGetEnv(t *testing.T) {
	env := []string{"A=1", "B=x=y", "EMPTY="}
	if value, ok := GetEnv(env, "B"); !ok || value != "x=y" {
		t.Fatalf("expected B=x=y, got %q %v", value, ok)
	}
	if value, ok := GetEnv(env, "EMPTY"); !ok || value != "" {
		t.Fatalf("expected empty value present, got %q %v", value, ok)
	}
	if _, ok := GetEnv(env, "MISSING"); ok {
		t.Fatalf("expected MISSING to be absent")
	}
}

func TestSetEnvReplacesAllEntries(t *testing.T) {
	base := []string{"KEY=old", "OTHER=1", "KEY=older"}
	env := SetEnv(base, "KEY", "new")

	if got := strings.Join(env, ","); got != "OTHER=1,KEY=new" {
		t.Fatalf("unexpected env %q", got)
	}
	if base[0] != "KEY=old" {
		t.Fatalf("SetEnv must not modify its input")
	}
}

func TestSetEnvDoesNotMatchPrefixKeys(t *testing.T) {
	env := SetEnv([]string{"KEYS=1"}, "KEY", "2")
	if got := strings.Join(env, ","); got != "KEYS=1,KEY=2" {
		t.Fatalf("unexpected env %q", got)
	}
}

func TestUnsetEnv(t *testing.T) {
	env := UnsetEnv([]string{"A=1", "B=2", "A=3"}, "A")
	if got := strings.Join(env, ","); got != "B=2" {
		t.Fatalf("unexpected env %q", got)
	}
	same := []string{"A=1"}
	if got := UnsetEnv(same, ""); len(got) != 1 {
		t.Fatalf("expected empty key to be a no-op")
	}
}

func TestMergeEnv(t *testing.T) {
	base := []string{"PATH=/bin", "B=old"}
	env := mergeEnv(base, map[string]string{"B": "new", "A": "1"})
	if got := strings.Join(env, ","); got != "PATH=/bin,A=1,B=new" {
		t.Fatalf("unexpected env %q", got)
	}
	if got := strings.Join(mergeEnv(base, nil), ","); got != "PATH=/bin,B=old" {
		t.Fatalf("expected nil overrides to keep base, got %q", got)
	}
}
