// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import "strings"

// onboardingState is the explicit finite-state value for the guided
// onboarding detour. Keeping it a standalone enum (instead of nested
// conditionals in dispatch) makes the sequence independently testable.
type onboardingState int

const (
	// onboardingIdle: normal dispatch, no detour in progress.
	onboardingIdle onboardingState = iota
	// onboardingAwaitingStart: the tour offer is on screen, waiting
	// for yes/no.
	onboardingAwaitingStart
	// onboardingAwaitingExperience: the terminal-familiarity question
	// is on screen, waiting for yes/no.
	onboardingAwaitingExperience
)

// startOnboarding begins the two-step detour. It runs at most once
// per session: the used flag is set on entry, so a later help goes
// straight to the command grid even if the visitor declined the tour.
func (session *Session) startOnboarding() {
	session.onboardingUsed = true
	session.onboarding = onboardingAwaitingStart
	session.appendOutput("First time in the stacks? Want a quick tour? [y/n]")
}

// advanceOnboarding consumes one input line while the detour is
// active. Anything that is not a recognizable yes or no reprompts
// without changing state.
func (session *Session) advanceOnboarding(line string) {
	answer, recognized := parseYesNo(line)
	if !recognized {
		session.appendOutput("Please answer y or n.")
		return
	}

	switch session.onboarding {
	case onboardingAwaitingStart:
		if !answer {
			session.onboarding = onboardingIdle
			session.appendOutput("No problem. Type help anytime for the command list.")
			return
		}
		session.onboarding = onboardingAwaitingExperience
		session.appendOutput("This library works like a tiny filesystem: directories\n" +
			"are shelves, files are things to read.\n\n" +
			"Have you used a terminal before? [y/n]")

	case onboardingAwaitingExperience:
		session.onboarding = onboardingIdle
		if answer {
			session.appendOutput("Then you already know the moves: ls, cd, cat.\n" +
				"tree shows the whole shelf at once, and search finds\n" +
				"anything by name, title, or tag. Enjoy.")
		} else {
			session.appendOutput("Start with ls to list what is here, then open <name>\n" +
				"to step into a shelf or read a file. back retraces your\n" +
				"steps, home returns to the front desk, and Tab completes\n" +
				"whatever you are typing. help shows the full list.")
		}
	}
}

// parseYesNo interprets a tolerant yes/no answer. Case-insensitive
// {y, yes, n, no}; everything else is unrecognized.
func parseYesNo(line string) (answer, recognized bool) {
	switch strings.ToLower(trimSpace(line)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
