package sandboxexec

import (
	"errors"
	"testing"
	"time"
)

func Test_Classify_Returns_Result_On_Clean_Exit(t *testing.T) {
	t.Parallel()

	raw := rawOutcome{
		status: ExitStatus{code: 0},
		stdout: []byte("ok\n"),
	}

	result, err := Classify(raw, SandboxNone, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if result.ExitCode != 0 || result.Stdout != "ok\n" {
		t.Fatalf("got %+v", result)
	}
}

func Test_Classify_Signal_Equal_To_Timeout_Code_Is_KindTimeout(t *testing.T) {
	t.Parallel()

	raw := rawOutcome{status: synthesizeTimeoutStatus()}

	_, err := Classify(raw, SandboxNone, time.Second)

	var sbErr *Error
	if !errors.As(err, &sbErr) || sbErr.Kind != KindTimeout {
		t.Fatalf("expected KindTimeout, got %v", err)
	}
}

func Test_Classify_Other_Signal_Is_KindSignal(t *testing.T) {
	t.Parallel()

	raw := rawOutcome{status: synthesizeInterruptStatus()}

	_, err := Classify(raw, SandboxNone, time.Second)

	var sbErr *Error
	if !errors.As(err, &sbErr) || sbErr.Kind != KindSignal || sbErr.Signal != signalKillCode {
		t.Fatalf("expected KindSignal/%d, got %v", signalKillCode, err)
	}
}

func Test_Classify_NonZero_Exit_Under_Sandbox_Is_KindDenied(t *testing.T) {
	t.Parallel()

	raw := rawOutcome{status: ExitStatus{code: 1}, stderr: []byte("denied\n")}

	_, err := Classify(raw, SandboxSeatbelt, time.Second)

	var sbErr *Error
	if !errors.As(err, &sbErr) || sbErr.Kind != KindDenied || sbErr.Code != 1 {
		t.Fatalf("expected KindDenied, got %v", err)
	}

	if sbErr.Stderr != "denied\n" {
		t.Fatalf("expected stderr to be preserved, got %q", sbErr.Stderr)
	}
}

func Test_Classify_NonZero_Exit_Under_No_Sandbox_Is_Plain_Result(t *testing.T) {
	t.Parallel()

	raw := rawOutcome{status: ExitStatus{code: 7}}

	result, err := Classify(raw, SandboxNone, time.Second)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if result.ExitCode != 7 {
		t.Fatalf("expected exit code 7, got %d", result.ExitCode)
	}
}

func Test_LossyUTF8_Replaces_Invalid_Bytes(t *testing.T) {
	t.Parallel()

	got := lossyUTF8([]byte{'o', 'k', 0xff, 0xfe})
	if got != "ok��" {
		t.Fatalf("got %q", got)
	}
}
