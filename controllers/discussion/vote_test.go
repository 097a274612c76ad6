package discussionController

import (
	"math/rand"
	"testing"

	discussionModels "learnify/models/discussion"

	"github.com/stretchr/testify/assert"
)

func TestApplyVoteFromNone(t *testing.T) {
	tally, state := applyVote(voteTally{}, 7, "", discussionModels.VoteUp)
	assert.Equal(t, 1, tally.Votes)
	assert.Equal(t, []uint{7}, tally.Upvoters)
	assert.Empty(t, tally.Downvoters)
	assert.Equal(t, discussionModels.VoteUp, state)

	tally, state = applyVote(voteTally{}, 7, "", discussionModels.VoteDown)
	assert.Equal(t, -1, tally.Votes)
	assert.Equal(t, []uint{7}, tally.Downvoters)
	assert.Equal(t, discussionModels.VoteDown, state)
}

func TestApplyVoteToggleOff(t *testing.T) {
	start := voteTally{Votes: 1, Upvoters: []uint{7}}

	tally, state := applyVote(start, 7, discussionModels.VoteUp, discussionModels.VoteUp)
	assert.Equal(t, 0, tally.Votes)
	assert.Empty(t, tally.Upvoters)
	assert.Equal(t, "", state)

	start = voteTally{Votes: -1, Downvoters: []uint{7}}
	tally, state = applyVote(start, 7, discussionModels.VoteDown, discussionModels.VoteDown)
	assert.Equal(t, 0, tally.Votes)
	assert.Empty(t, tally.Downvoters)
	assert.Equal(t, "", state)
}

func TestApplyVoteSwitchSwingsByTwo(t *testing.T) {
	start := voteTally{Votes: 1, Upvoters: []uint{7}}

	tally, state := applyVote(start, 7, discussionModels.VoteUp, discussionModels.VoteDown)
	assert.Equal(t, -1, tally.Votes)
	assert.Empty(t, tally.Upvoters)
	assert.Equal(t, []uint{7}, tally.Downvoters)
	assert.Equal(t, discussionModels.VoteDown, state)

	tally, state = applyVote(tally, 7, discussionModels.VoteDown, discussionModels.VoteUp)
	assert.Equal(t, 1, tally.Votes)
	assert.Equal(t, []uint{7}, tally.Upvoters)
	assert.Empty(t, tally.Downvoters)
	assert.Equal(t, discussionModels.VoteUp, state)
}

func TestApplyVoteNullClears(t *testing.T) {
	start := voteTally{Votes: 1, Upvoters: []uint{7}}

	tally, state := applyVote(start, 7, discussionModels.VoteUp, "")
	assert.Equal(t, 0, tally.Votes)
	assert.Empty(t, tally.Upvoters)
	assert.Equal(t, "", state)

	// Clearing with no existing vote is a no-op
	tally, state = applyVote(voteTally{}, 7, "", "")
	assert.Equal(t, 0, tally.Votes)
	assert.Equal(t, "", state)
}

// TestApplyVoteTallyInvariant drives random vote sequences from many
// users and checks Votes == len(Upvoters) - len(Downvoters) throughout
func TestApplyVoteTallyInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	choices := []string{"", discussionModels.VoteUp, discussionModels.VoteDown}

	tally := voteTally{}
	states := map[uint]string{}

	for i := 0; i < 2000; i++ {
		userID := uint(rng.Intn(20) + 1)
		requested := choices[rng.Intn(len(choices))]

		var state string
		tally, state = applyVote(tally, userID, states[userID], requested)
		states[userID] = state

		assert.Equal(t, len(tally.Upvoters)-len(tally.Downvoters), tally.Votes)

		// A voter never sits in both sets
		for _, up := range tally.Upvoters {
			for _, down := range tally.Downvoters {
				assert.NotEqual(t, up, down)
			}
		}
	}
}

func TestRemoveFromSet(t *testing.T) {
	assert.Equal(t, []uint{1, 3}, removeFromSet([]uint{1, 2, 3}, 2))
	assert.Equal(t, []uint{1, 2, 3}, removeFromSet([]uint{1, 2, 3}, 9))
	assert.Empty(t, removeFromSet([]uint{5}, 5))
}
