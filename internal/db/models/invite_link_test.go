package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInviteLinkStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	one := 1
	two := 2

	testCases := []struct {
		name string
		link InviteLink
		want LinkStatus
	}{
		{
			name: "unbounded link is active",
			link: InviteLink{},
			want: LinkStatusActive,
		},
		{
			name: "future expiry is active",
			link: InviteLink{Expires: &future},
			want: LinkStatusActive,
		},
		{
			name: "past expiry is expired",
			link: InviteLink{Expires: &past},
			want: LinkStatusExpired,
		},
		{
			name: "uses below limit is active",
			link: InviteLink{UsageLimit: &two, Uses: 1},
			want: LinkStatusActive,
		},
		{
			name: "uses at limit is exhausted",
			link: InviteLink{UsageLimit: &one, Uses: 1},
			want: LinkStatusUsageLimitExceeded,
		},
		{
			name: "revocation wins over expiry",
			link: InviteLink{RevokedAt: &past, Expires: &past},
			want: LinkStatusRevoked,
		},
		{
			name: "expiry wins over exhaustion",
			link: InviteLink{Expires: &past, UsageLimit: &one, Uses: 1},
			want: LinkStatusExpired,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.link.Status(now))
		})
	}
}

func TestInviteLinkStatusIsDerivedPerRead(t *testing.T) {
	expires := time.Now()
	link := InviteLink{Expires: &expires}

	// the same stored row classifies differently as time passes
	assert.Equal(t, LinkStatusActive, link.Status(expires.Add(-time.Minute)))
	assert.Equal(t, LinkStatusExpired, link.Status(expires.Add(time.Minute)))
}

func TestShareLinkGrants(t *testing.T) {
	viewer := SharePollLink{Type: ShareLinkViewer}
	voter := SharePollLink{Type: ShareLinkVoter}

	assert.Equal(t, PollRoleViewer, viewer.Grants())
	assert.Equal(t, PollRoleVoter, voter.Grants())
}
