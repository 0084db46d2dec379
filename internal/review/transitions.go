package review

// Rule describes one legal reviewer decision: applying Decision to an item in
// status From moves it to status To. NeedsAmount marks decisions that must
// carry a positive amount (fund assignment).
type Rule struct {
	Decision    Decision
	From        Status
	To          Status
	NeedsAmount bool
}

// Transitions is a domain's explicit legality table. Any (decision, status)
// pair not in the table is rejected by the service, so an already-rejected
// item cannot be approved no matter what the client sends.
type Transitions struct {
	rules []Rule
}

func NewTransitions(rules ...Rule) Transitions {
	return Transitions{rules: rules}
}

// Find returns the rule for applying decision to an item in status from.
func (t Transitions) Find(decision Decision, from Status) (Rule, bool) {
	for _, rule := range t.rules {
		if rule.Decision == decision && rule.From == from {
			return rule, true
		}
	}
	return Rule{}, false
}

// Allowed lists the decisions available from the given status, in table order.
func (t Transitions) Allowed(from Status) []Decision {
	var decisions []Decision
	for _, rule := range t.rules {
		if rule.From == from {
			decisions = append(decisions, rule.Decision)
		}
	}
	return decisions
}

// KnownStatus reports whether a status appears anywhere in the table. Used to
// reject typo'd queue filters instead of silently returning an empty list.
func (t Transitions) KnownStatus(status Status) bool {
	if status == StatusAll {
		return true
	}
	for _, rule := range t.rules {
		if rule.From == status || rule.To == status {
			return true
		}
	}
	return false
}

// ModerationTransitions is the table shared by the verification queue:
// pending items either pass or fail, terminally.
func ModerationTransitions() Transitions {
	return NewTransitions(
		Rule{Decision: DecisionApprove, From: StatusPending, To: StatusApproved},
		Rule{Decision: DecisionReject, From: StatusPending, To: StatusRejected},
	)
}

// CauseTransitions extends moderation with the funding lifecycle:
// approved causes get funds assigned, funded causes are eventually completed.
func CauseTransitions() Transitions {
	return NewTransitions(
		Rule{Decision: DecisionApprove, From: StatusPending, To: StatusApproved},
		Rule{Decision: DecisionReject, From: StatusPending, To: StatusRejected},
		Rule{Decision: DecisionAssignFunds, From: StatusApproved, To: StatusFunded, NeedsAmount: true},
		Rule{Decision: DecisionComplete, From: StatusFunded, To: StatusCompleted},
	)
}

// CommentTransitions adds a spam verdict to plain moderation.
func CommentTransitions() Transitions {
	return NewTransitions(
		Rule{Decision: DecisionApprove, From: StatusPending, To: StatusApproved},
		Rule{Decision: DecisionReject, From: StatusPending, To: StatusRejected},
		Rule{Decision: DecisionMarkSpam, From: StatusPending, To: StatusSpam},
	)
}
