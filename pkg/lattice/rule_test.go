package lattice

import (
	"testing"

	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/iam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestListener_AddRule(t *testing.T) {
	caller := iam.ArnPrincipal{Arn: "arn:aws:iam::123456789012:role/caller"}
	getMatch := HttpMatch{Method: HttpMethodGet}

	tests := []struct {
		name string
		// existing rules are added before the rule under test
		existing []RuleProps
		props    RuleProps
		orgId    any
		// check is called with the added rule and its service on success
		check   func(assert *assert.Assertions, svc *Service, r *Rule)
		wantErr string
	}{
		{
			name:  "default priority and no access mode",
			props: RuleProps{Name: "get", Action: FixedResponseAction(FixedResponseOk), HttpMatch: getMatch, AllowedPrincipals: []iam.Principal{caller}},
			check: func(assert *assert.Assertions, svc *Service, r *Rule) {
				assert.Equal(50, r.Priority)
				assert.Equal(map[string]any{
					"Effect":    "Allow",
					"Action":    invokeAction,
					"Principal": map[string]any{"AWS": caller.Arn},
					"Condition": map[string]any{
						"StringEquals": map[string]any{"vpc-lattice-svcs:RequestMethod": "GET"},
					},
				}, r.Statement.Render())
				assert.Equal([]*iam.Statement{r.Statement}, svc.AuthPolicy().Statement)
			},
		},
		{
			name: "unauthenticated prefix path",
			props: RuleProps{
				Name:       "public",
				Priority:   Ptr(10),
				Action:     FixedResponseAction(FixedResponseOk),
				HttpMatch:  HttpMatch{PathMatch: &PathMatch{Path: "/public", Type: PathMatchPrefix}},
				AccessMode: RuleAccessUnauthenticated,
			},
			check: func(assert *assert.Assertions, svc *Service, r *Rule) {
				rendered := r.Statement.Render()
				assert.Equal("*", rendered["Principal"])
				assert.Equal(cfn.Arn("vpc-lattice", "service/", svc.ServiceId(), "/public", "*"), rendered["Resource"])
			},
		},
		{
			name: "exact path and header matches",
			props: RuleProps{
				Name:   "headers",
				Action: FixedResponseAction(FixedResponseOk),
				HttpMatch: HttpMatch{
					PathMatch: &PathMatch{Path: "/items"},
					HeaderMatches: []HeaderMatch{
						{Name: "x-env", Value: "prod"},
						{Name: "x-team", Operator: MatchPrefix, Value: "pay"},
					},
				},
				AccessMode:           RuleAccessAuthenticatedOnly,
				AllowedPrincipalArns: []string{caller.Arn.(string)},
			},
			check: func(assert *assert.Assertions, svc *Service, r *Rule) {
				rendered := r.Statement.Render()
				assert.Equal(cfn.Arn("vpc-lattice", "service/", svc.ServiceId(), "/items"), rendered["Resource"])
				assert.Equal(map[string]any{
					"StringEquals": map[string]any{
						"vpc-lattice-svcs:RequestHeader/x-env":  "prod",
						"vpc-lattice-svcs:RequestHeader/x-team": "pay*",
					},
					"StringNotEqualsIgnoreCase": map[string]any{"aws:PrincipalType": "Anonymous"},
				}, rendered["Condition"])
			},
		},
		{
			name:  "org only",
			orgId: "o-abc123",
			props: RuleProps{
				Name:              "org",
				Action:            FixedResponseAction(FixedResponseOk),
				HttpMatch:         getMatch,
				AccessMode:        RuleAccessOrgOnly,
				AllowedPrincipals: []iam.Principal{caller},
			},
			check: func(assert *assert.Assertions, svc *Service, r *Rule) {
				assert.Equal(iam.Conditions{
					"StringEquals": {
						"aws:PrincipalOrgID":             []any{"o-abc123"},
						"vpc-lattice-svcs:RequestMethod": "GET",
					},
					"StringNotEqualsIgnoreCase": {"aws:PrincipalType": "Anonymous"},
				}, r.Statement.Conditions)
			},
		},
		{
			name:  "no statement",
			props: RuleProps{Name: "quiet", Action: FixedResponseAction(FixedResponseOk), HttpMatch: getMatch, AccessMode: RuleAccessNoStatement},
			check: func(assert *assert.Assertions, svc *Service, r *Rule) {
				assert.Nil(r.Statement)
				assert.True(svc.AuthPolicy().IsEmpty())
			},
		},
		{
			name:     "duplicate priority",
			existing: []RuleProps{{Name: "first", Action: FixedResponseAction(FixedResponseOk), HttpMatch: getMatch, AccessMode: RuleAccessNoStatement}},
			props:    RuleProps{Name: "second", Action: FixedResponseAction(FixedResponseOk), HttpMatch: getMatch, AccessMode: RuleAccessNoStatement},
			wantErr:  "Priority is already in use, ensure all listerner rules have unique prioritys",
		},
		{
			name:    "priority out of range",
			props:   RuleProps{Name: "get", Priority: Ptr(101), Action: FixedResponseAction(FixedResponseOk), HttpMatch: getMatch},
			wantErr: "Priority must be between 1 and 100",
		},
		{
			name:    "empty match",
			props:   RuleProps{Name: "get", Action: FixedResponseAction(FixedResponseOk)},
			wantErr: "At least one of pathMatches, headerMatches, or method must be provided",
		},
		{
			name: "unauthenticated with principals",
			props: RuleProps{
				Name:              "get",
				Action:            FixedResponseAction(FixedResponseOk),
				HttpMatch:         getMatch,
				AccessMode:        RuleAccessUnauthenticated,
				AllowedPrincipals: []iam.Principal{caller},
			},
			wantErr: "An unauthenticated rule cannot have allowedPrincipals",
		},
		{
			name:    "forward without target groups",
			props:   RuleProps{Name: "fwd", Action: ForwardAction(), HttpMatch: getMatch},
			wantErr: "A forward action must have at least one target group",
		},
		{
			name:    "missing action",
			props:   RuleProps{Name: "get", HttpMatch: getMatch},
			wantErr: "A rule action must be provided",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			ctrl := gomock.NewController(t)
			orgResolver := NewMockOrgIdResolver(ctrl)
			s := newTestStack(Lookups{OrgId: orgResolver})
			if tt.orgId != nil {
				orgResolver.EXPECT().OrgId(gomock.Any(), s.Stack).Return(tt.orgId, nil)
			}
			svc, err := NewService(s, "svc", ServiceProps{})
			require.NoError(t, err)
			l, err := svc.AddListener("listener", ListenerProps{})
			require.NoError(t, err)
			for _, p := range tt.existing {
				_, err := l.AddRule(p)
				require.NoError(t, err)
			}
			rulesBefore := resourcesOf(t, s, RuleType)
			statementsBefore := len(svc.AuthPolicy().Statement)

			r, err := l.AddRule(tt.props)
			if tt.wantErr != "" {
				assert.EqualError(err, tt.wantErr)
				assert.Equal(rulesBefore, resourcesOf(t, s, RuleType))
				assert.Len(l.Rules(), len(tt.existing))
				assert.Len(svc.AuthPolicy().Statement, statementsBefore)
				return
			}
			if !assert.NoError(err) {
				return
			}
			props := propertiesOf(t, s, r.ResourceId())
			assert.Equal(r.Priority, props["Priority"])
			assert.Equal(l.ListenerId(), props["ListenerIdentifier"])
			assert.Equal("svc/listener/"+tt.props.Name+"-Rule", r.ResourceId().Name)
			assert.Contains(l.Rules(), r)
			tt.check(assert, svc, r)
		})
	}
}

func TestListener_AddRule_PriorityFreedOnlyBySuccess(t *testing.T) {
	assert := assert.New(t)
	s := newTestStack(Lookups{})
	svc, err := NewService(s, "svc", ServiceProps{})
	require.NoError(t, err)
	l, err := svc.AddListener("listener", ListenerProps{})
	require.NoError(t, err)

	_, err = l.AddRule(RuleProps{Name: "bad", Priority: Ptr(10), Action: FixedResponseAction(FixedResponseOk)})
	assert.Error(err)

	_, err = l.AddRule(RuleProps{Name: "good", Priority: Ptr(10), Action: FixedResponseAction(FixedResponseOk), HttpMatch: HttpMatch{Method: HttpMethodPost}, AccessMode: RuleAccessNoStatement})
	assert.NoError(err)

	_, err = l.AddRule(RuleProps{Name: "again", Priority: Ptr(10), Action: FixedResponseAction(FixedResponseOk), HttpMatch: HttpMatch{Method: HttpMethodPut}, AccessMode: RuleAccessNoStatement})
	assert.ErrorIs(err, ErrDuplicatePriority)
}

func TestListener_AddRule_Names(t *testing.T) {
	tests := []struct {
		name     string
		ruleName string
		wantId   string
		wantErr  string
	}{
		{name: "plain", ruleName: "get-items", wantId: "svc/listener/get-items-Rule"},
		{name: "whitespace", ruleName: "get items", wantId: "svc/listener/get-items-Rule"},
		{name: "path separator", ruleName: "a/b", wantId: "svc/listener/ab-Rule"},
		{name: "nothing usable", ruleName: "//", wantErr: `The rule name "//" must contain alphanumeric characters`},
		{name: "punctuation only", ruleName: "- -", wantErr: `The rule name "- -" must contain alphanumeric characters`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			s := newTestStack(Lookups{})
			svc, err := NewService(s, "svc", ServiceProps{})
			require.NoError(t, err)
			l, err := svc.AddListener("listener", ListenerProps{})
			require.NoError(t, err)

			r, err := l.AddRule(RuleProps{
				Name:       tt.ruleName,
				Action:     FixedResponseAction(FixedResponseOk),
				HttpMatch:  HttpMatch{Method: HttpMethodGet},
				AccessMode: RuleAccessNoStatement,
			})
			if tt.wantErr != "" {
				assert.EqualError(err, tt.wantErr)
				assert.ErrorIs(err, ErrInvalidProps)
				assert.Empty(resourcesOf(t, s, RuleType))
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tt.wantId, r.ResourceId().Name)
			assert.Equal(tt.ruleName, r.Name)
		})
	}
}
