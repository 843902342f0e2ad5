package travelPlan

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

func TestGenerator_Generate(t *testing.T) {
	prefs := types.TravelPreferences{City: "Bandung", Interests: []string{"kuliner"}, Duration: 2, Budget: "menengah"}

	t.Run("parses the reply with the plan schema", func(t *testing.T) {
		ai := new(MockTextGenerator)
		ai.On("GenerateJSON", mock.Anything, mock.MatchedBy(func(p string) bool {
			return p == getPlanPrompt(prefs)
		}), planResponseSchema).Return(bandungReply, nil).Once()

		plan, err := NewGenerator(ai, discardLogger).Generate(context.Background(), prefs)
		require.NoError(t, err)
		assert.Len(t, plan.Destinations, 2)
		ai.AssertExpectations(t)
	})

	t.Run("upstream failure is passed through", func(t *testing.T) {
		ai := new(MockTextGenerator)
		upstream := fmt.Errorf("%w: %v", types.ErrGenerationFailed, errors.New("401 unauthorized"))
		ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).Return("", upstream).Once()

		_, err := NewGenerator(ai, discardLogger).Generate(context.Background(), prefs)
		assert.ErrorIs(t, err, types.ErrGenerationFailed)
		assert.NotErrorIs(t, err, types.ErrMalformedResponse)
	})

	t.Run("reply without JSON is malformed", func(t *testing.T) {
		ai := new(MockTextGenerator)
		ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).Return("Maaf, saya tidak tahu.", nil).Once()

		_, err := NewGenerator(ai, discardLogger).Generate(context.Background(), prefs)
		assert.ErrorIs(t, err, types.ErrMalformedResponse)
	})
}
