package fonts

import "testing"

func TestFaceCached(t *testing.T) {
	a, err := Face(Regular, 12)
	if err != nil {
		t.Fatalf("Face() error: %v", err)
	}
	b, err := Face(Regular, 12.01)
	if err != nil {
		t.Fatalf("Face() error: %v", err)
	}
	if a != b {
		t.Error("faces of the same rounded size should be shared")
	}
}

func TestFaceWeights(t *testing.T) {
	r, err := Face(Regular, 14)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Face(Bold, 14)
	if err != nil {
		t.Fatal(err)
	}
	if r == b {
		t.Error("regular and bold should be distinct faces")
	}
	if r.Metrics().Height <= 0 {
		t.Error("face has no height")
	}
}
