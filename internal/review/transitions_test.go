package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitions_Find(t *testing.T) {
	table := CauseTransitions()

	t.Run("legal edge", func(t *testing.T) {
		rule, ok := table.Find(DecisionApprove, StatusPending)
		require.True(t, ok)
		assert.Equal(t, StatusApproved, rule.To)
		assert.False(t, rule.NeedsAmount)
	})

	t.Run("funding edge carries amount requirement", func(t *testing.T) {
		rule, ok := table.Find(DecisionAssignFunds, StatusApproved)
		require.True(t, ok)
		assert.Equal(t, StatusFunded, rule.To)
		assert.True(t, rule.NeedsAmount)
	})

	t.Run("decisions do not apply across statuses", func(t *testing.T) {
		_, ok := table.Find(DecisionApprove, StatusRejected)
		assert.False(t, ok)

		_, ok = table.Find(DecisionAssignFunds, StatusPending)
		assert.False(t, ok)

		_, ok = table.Find(DecisionComplete, StatusApproved)
		assert.False(t, ok)
	})
}

func TestTransitions_Allowed(t *testing.T) {
	table := CommentTransitions()

	assert.Equal(t,
		[]Decision{DecisionApprove, DecisionReject, DecisionMarkSpam},
		table.Allowed(StatusPending),
	)
	assert.Empty(t, table.Allowed(StatusApproved), "approved comments are terminal")
	assert.Empty(t, table.Allowed(StatusSpam))
}

func TestTransitions_KnownStatus(t *testing.T) {
	table := ModerationTransitions()

	assert.True(t, table.KnownStatus(StatusAll))
	assert.True(t, table.KnownStatus(StatusPending))
	assert.True(t, table.KnownStatus(StatusApproved))
	assert.True(t, table.KnownStatus(StatusRejected))
	assert.False(t, table.KnownStatus(StatusFunded), "funding statuses belong to causes only")
	assert.False(t, table.KnownStatus(Status("bogus")))
}

func TestDomainTables_TerminalStatuses(t *testing.T) {
	t.Run("moderation has no edges out of terminal states", func(t *testing.T) {
		table := ModerationTransitions()
		assert.Empty(t, table.Allowed(StatusApproved))
		assert.Empty(t, table.Allowed(StatusRejected))
	})

	t.Run("cause lifecycle ends at completed", func(t *testing.T) {
		table := CauseTransitions()
		assert.Equal(t, []Decision{DecisionAssignFunds}, table.Allowed(StatusApproved))
		assert.Equal(t, []Decision{DecisionComplete}, table.Allowed(StatusFunded))
		assert.Empty(t, table.Allowed(StatusCompleted))
	})
}
