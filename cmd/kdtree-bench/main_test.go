package main

import "testing"

func TestRandomCoordDimensions(t *testing.T) {
	c := randomCoord(5)
	if len(c) != 5 {
		t.Fatalf("randomCoord(5) length = %d, want 5", len(c))
	}
	for _, x := range c {
		if x < 0 || x > 100 {
			t.Fatalf("coordinate %f out of expected [0,100] range", x)
		}
	}
}
