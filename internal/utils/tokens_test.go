package utils

import (
	"strconv"
	"testing"
)

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(otp) != 4 {
			t.Fatalf("otp %q is not 4 digits", otp)
		}
		n, err := strconv.Atoi(otp)
		if err != nil {
			t.Fatalf("otp %q is not numeric", otp)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("otp %d outside [1000, 9999]", n)
		}
	}
}

func TestNewLinkCode(t *testing.T) {
	code, err := NewLinkCode(16)
	if err != nil {
		t.Fatalf("NewLinkCode: %v", err)
	}
	if len(code) != 32 {
		t.Errorf("len = %d, want 32 hex chars for 16 bytes", len(code))
	}

	other, err := NewLinkCode(16)
	if err != nil {
		t.Fatalf("NewLinkCode: %v", err)
	}
	if code == other {
		t.Error("two codes collided")
	}

	// non-positive sizes fall back to 32 bytes
	long, err := NewLinkCode(0)
	if err != nil {
		t.Fatalf("NewLinkCode(0): %v", err)
	}
	if len(long) != 64 {
		t.Errorf("default len = %d, want 64", len(long))
	}
}
