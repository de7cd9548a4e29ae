package droute

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Branch is one of the two outcomes of a rule: the action to execute and the
// tag of the rule to continue with. Next may be EndTag to stop routing.
type Branch struct {
	Action Action
	Next   Label
}

// Rule is one node of the routing graph. Its matcher decides which of the
// two branches handles the query: onMatch when the matcher succeeds, noMatch
// when it fails.
type Rule struct {
	tag     Label
	matcher Matcher
	onMatch Branch
	noMatch Branch
}

// NewRule returns a rule with the given tag, matcher and branches.
func NewRule(tag Label, matcher Matcher, onMatch, noMatch Branch) *Rule {
	return &Rule{
		tag:     tag,
		matcher: matcher,
		onMatch: onMatch,
		noMatch: noMatch,
	}
}

func (r *Rule) Tag() Label {
	return r.tag
}

func (r *Rule) onMatchNext() Label {
	return r.onMatch.Next
}

func (r *Rule) noMatchNext() Label {
	return r.noMatch.Next
}

// The upstream names either branch's action may dispatch to.
func (r *Rule) usedUpstreams() []Label {
	return append(r.onMatch.Action.UsedUpstreams(), r.noMatch.Action.UsedUpstreams()...)
}

// Evaluate the matcher against the state, execute the action of the chosen
// branch and return the next tag. An action failure aborts routing for this
// query and is returned as-is.
func (r *Rule) route(ctx context.Context, s *State, upstreams Exchanger, qname string) (Label, error) {
	branch := r.noMatch
	matched := r.matcher.Match(s.Query.Question, s.Resp.Answer)
	if matched {
		branch = r.onMatch
	}
	Log.WithFields(logrus.Fields{
		"qname":   qname,
		"tag":     r.tag,
		"matcher": r.matcher.String(),
		"matched": matched,
	}).Debug("rule evaluated")

	if err := branch.Action.Act(ctx, s, upstreams); err != nil {
		return "", err
	}
	return branch.Next, nil
}
