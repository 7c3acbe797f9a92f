// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"strings"
	"testing"
)

func TestFirstHelpStartsOnboarding(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("help")
	if !session.OnboardingActive() {
		t.Fatal("first help must enter the onboarding detour")
	}
	if !strings.Contains(lastEntry(t, session).Text, "[y/n]") {
		t.Errorf("expected a yes/no question, got %q", lastEntry(t, session).Text)
	}
}

func TestOnboardingGatesDispatch(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("help")
	before := session.WorkingDir()

	// While the detour is active, command lines are answers, not
	// commands.
	session.Execute("cd books")
	if session.WorkingDir() != before {
		t.Error("dispatch must be gated during onboarding")
	}
	if !strings.Contains(lastEntry(t, session).Text, "y or n") {
		t.Errorf("unrecognized answer should reprompt, got %q", lastEntry(t, session).Text)
	}
}

func TestOnboardingRepromptsOnGarbage(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("help")
	session.Execute("maybe")
	if !session.OnboardingActive() {
		t.Error("garbage answers must not advance the detour")
	}
}

func TestOnboardingFullTour(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("help")
	session.Execute("YES")
	if !session.OnboardingActive() {
		t.Fatal("tour should continue to the experience question")
	}
	session.Execute("n")
	if session.OnboardingActive() {
		t.Fatal("tour should finish after the second answer")
	}
	if !strings.Contains(lastEntry(t, session).Text, "ls") {
		t.Errorf("newcomer tips expected, got %q", lastEntry(t, session).Text)
	}

	// Dispatch works again.
	session.Execute("cd books")
	if session.WorkingDir() != "/books" {
		t.Error("dispatch should resume after onboarding")
	}
}

func TestOnboardingDeclined(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("help")
	session.Execute("no")
	if session.OnboardingActive() {
		t.Fatal("declining must end the detour")
	}
}

func TestOnboardingRunsAtMostOnce(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("help")
	session.Execute("n")

	session.Execute("help")
	if session.OnboardingActive() {
		t.Fatal("second help must not restart onboarding")
	}
	if !strings.Contains(lastEntry(t, session).Text, "Navigate") {
		t.Errorf("second help should print the command grid, got %q", lastEntry(t, session).Text)
	}
}

func TestSummaryDoesNotGateOnboarding(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("summary")
	if session.OnboardingActive() {
		t.Error("summary must not start the onboarding detour")
	}
	if lastEntry(t, session).Kind != EntryOutput {
		t.Errorf("%+v", lastEntry(t, session))
	}
}
