package main

import (
	"errors"
	"testing"
)

func TestGateCmd_FlagsExist(t *testing.T) {
	cmd := gateCmd()

	expectedFlags := []string{"config", "format", "json", "output-dir", "html", "verbose"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestGateCmd_ShortFlags(t *testing.T) {
	cmd := gateCmd()

	shortFlags := map[string]string{
		"c": "config",
		"f": "format",
		"o": "output-dir",
		"v": "verbose",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestGateCmd_DefaultValues(t *testing.T) {
	cmd := gateCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("Expected default format to be 'text', got '%s'", formatFlag.DefValue)
	}

	jsonFlag := cmd.Flags().Lookup("json")
	if jsonFlag == nil {
		t.Fatal("json flag not found")
	}
	if jsonFlag.DefValue != "false" {
		t.Errorf("Expected json flag default 'false', got '%s'", jsonFlag.DefValue)
	}
}

func TestGateCmd_NoPathsError(t *testing.T) {
	cmd := gateCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error when no result paths specified")
	}

	var exitErr *GateExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected GateExitError, got %T", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Expected exit code 2 for input errors, got %d", exitErr.Code)
	}
}

func TestRunCmd_FlagsExist(t *testing.T) {
	cmd := runCmd()

	expectedFlags := []string{"url", "select", "timeout", "results", "config", "format", "json", "output-dir", "html", "verbose"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestRunCmd_ShortFlags(t *testing.T) {
	cmd := runCmd()

	shortFlags := map[string]string{
		"u": "url",
		"s": "select",
		"c": "config",
		"f": "format",
		"o": "output-dir",
		"v": "verbose",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestRunCmd_DefaultSelect(t *testing.T) {
	cmd := runCmd()

	selectFlag := cmd.Flags().Lookup("select")
	if selectFlag == nil {
		t.Fatal("select flag not found")
	}
	// Default is all registered probes
	if selectFlag.DefValue != "[performance,security]" {
		t.Errorf("Expected default select '[performance,security]', got '%s'", selectFlag.DefValue)
	}
}

func TestRunCmd_NoTargetURLError(t *testing.T) {
	cmd := runCmd()
	cmd.SetArgs([]string{"--url", ""})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error without a target URL")
	}

	var exitErr *GateExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected GateExitError, got %T", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Expected exit code 2, got %d", exitErr.Code)
	}
}

func TestGateExitError(t *testing.T) {
	err := &GateExitError{Code: 1, Message: "deployment blocked"}
	if err.Error() != "deployment blocked" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}
