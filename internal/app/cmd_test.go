package app

import (
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{[]string{}, CommandServe},
		{[]string{"serve"}, CommandServe},
		{[]string{"migrate"}, CommandMigrate},
		{[]string{"healthcheck"}, CommandHealthcheck},
		{[]string{"login", "--email", "a@x.com"}, CommandLogin},
		{[]string{"logout"}, CommandLogout},
		{[]string{"whoami"}, CommandWhoami},
		{[]string{"visit", "/guard"}, CommandVisit},
		{[]string{"unknown"}, CommandServe},
	}

	for _, tt := range tests {
		if got := ParseCommand(tt.args); got != tt.want {
			t.Errorf("ParseCommand(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestCommand_IsSessionCommand(t *testing.T) {
	session := []Command{CommandLogin, CommandLogout, CommandWhoami, CommandVisit}
	for _, cmd := range session {
		if !cmd.IsSessionCommand() {
			t.Errorf("%q should be a session command", cmd)
		}
	}

	other := []Command{CommandServe, CommandMigrate, CommandHealthcheck}
	for _, cmd := range other {
		if cmd.IsSessionCommand() {
			t.Errorf("%q should not be a session command", cmd)
		}
	}
}
