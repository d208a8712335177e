package lattice

import (
	"context"
	"errors"
	"testing"

	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func newTestStack(lookups Lookups) *Stack {
	return NewStack(context.Background(), "test", lookups)
}

// resourcesOf returns the names of the stack's resources of `resourceType`, in creation order.
func resourcesOf(t *testing.T, s *Stack, resourceType string) []string {
	t.Helper()
	ids, err := s.Resources(resourceType)
	require.NoError(t, err)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return names
}

func propertiesOf(t *testing.T, s *Stack, id construct.ResourceId) construct.Properties {
	t.Helper()
	r, err := s.Resource(id)
	require.NoError(t, err)
	return r.Properties
}

func TestStack_OrgId(t *testing.T) {
	t.Run("resolved once", func(t *testing.T) {
		assert := assert.New(t)
		ctrl := gomock.NewController(t)
		resolver := NewMockOrgIdResolver(ctrl)
		s := newTestStack(Lookups{OrgId: resolver})
		resolver.EXPECT().OrgId(gomock.Any(), s.Stack).Return("o-abc123", nil).Times(1)

		for i := 0; i < 2; i++ {
			id, err := s.OrgId()
			assert.NoError(err)
			assert.Equal("o-abc123", id)
		}
	})

	t.Run("resolver error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := NewMockOrgIdResolver(ctrl)
		s := newTestStack(Lookups{OrgId: resolver})
		resolver.EXPECT().OrgId(gomock.Any(), s.Stack).Return(nil, errors.New("access denied"))

		_, err := s.OrgId()
		assert.EqualError(t, err, "access denied")
	})

	t.Run("no resolver", func(t *testing.T) {
		s := newTestStack(Lookups{})
		_, err := s.OrgId()
		assert.ErrorIs(t, err, ErrInvalidProps)
	})
}
