package services

import "github.com/anjiri1684/skill_swap/models"

// Allowed lifecycle edges. Anything absent is rejected.
var swapTransitions = map[string]map[string]bool{
	models.SwapPending:  {models.SwapAccepted: true, models.SwapRejected: true},
	models.SwapAccepted: {models.SwapCompleted: true},
}

var sessionTransitions = map[string]map[string]bool{
	models.SessionScheduled:  {models.SessionInProgress: true, models.SessionCancelled: true, models.SessionCompleted: true},
	models.SessionInProgress: {models.SessionCompleted: true},
}

func CanTransitionSwap(from, to string) bool {
	return swapTransitions[from][to]
}

func CanTransitionSession(from, to string) bool {
	return sessionTransitions[from][to]
}

func IsSwapStatus(s string) bool {
	switch s {
	case models.SwapPending, models.SwapAccepted, models.SwapRejected, models.SwapCompleted:
		return true
	}
	return false
}

func IsSessionStatus(s string) bool {
	switch s {
	case models.SessionScheduled, models.SessionInProgress, models.SessionCompleted, models.SessionCancelled:
		return true
	}
	return false
}

// IsTerminalSwap reports whether no edge leaves s.
func IsTerminalSwap(s string) bool {
	return len(swapTransitions[s]) == 0
}

func IsTerminalSession(s string) bool {
	return len(sessionTransitions[s]) == 0
}
