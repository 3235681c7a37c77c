package heal

import "testing"

func TestRecoverParsesCleanSourceUnchanged(t *testing.T) {
	src := "package components\n\ntype X struct{}\n"
	p, recovered, fallback := Recover(src, "components", "X")
	if p == nil {
		t.Fatal("expected a parsed result")
	}
	if recovered != src {
		t.Errorf("expected unchanged source for already-valid input, got %q", recovered)
	}
	if fallback {
		t.Error("did not expect the emergency fallback to be used")
	}
}

func TestRecoverStripsCodeFence(t *testing.T) {
	src := "```go\npackage components\n\ntype X struct{}\n```"
	p, recovered, fallback := Recover(src, "components", "X")
	if p == nil {
		t.Fatal("expected cleanup to produce a parseable result")
	}
	if fallback {
		t.Error("did not expect the emergency fallback for a simple fence-wrapped source")
	}
	if recovered == src {
		t.Error("expected the code fence to be stripped")
	}
}

func TestRecoverFallsBackToEmergencySkeleton(t *testing.T) {
	src := "this is not even close to valid go ???"
	p, recovered, fallback := Recover(src, "components", "GeneratedStore_orders")
	if p == nil {
		t.Fatal("expected emergency skeleton to parse")
	}
	if !fallback {
		t.Error("expected the emergency fallback to be used")
	}
	if recovered != EmergencySkeleton("components", "GeneratedStore_orders") {
		t.Error("expected recovered source to equal the emergency skeleton")
	}
}

func TestEmergencySkeletonParses(t *testing.T) {
	src := EmergencySkeleton("components", "GeneratedStore_orders")
	if _, err := Parse(src); err != nil {
		t.Fatalf("emergency skeleton does not parse: %v", err)
	}
}
