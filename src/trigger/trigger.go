// Package trigger decides whether a repository event starts a pipeline run.
package trigger

import (
	"fmt"

	"github.com/sofmeright/pipewright/src/config"
)

// Event is a normalized repository event type.
type Event string

const (
	EventPush         Event = "push"
	EventMergeRequest Event = "merge_request"
	EventManual       Event = "manual"
)

// ParseEvent normalizes the event names emitted by CI platforms.
// GitLab uses "push"/"merge_request_event"/"web"/"trigger"; GitHub uses
// "push"/"pull_request"/"workflow_dispatch".
func ParseEvent(s string) (Event, error) {
	switch s {
	case "push":
		return EventPush, nil
	case "merge_request", "merge_request_event", "pull_request":
		return EventMergeRequest, nil
	case "manual", "web", "trigger", "workflow_dispatch", "api":
		return EventManual, nil
	}
	return "", fmt.Errorf("unknown event %q", s)
}

// Decision is the outcome of evaluating the trigger policy.
type Decision struct {
	Run    bool
	Reason string
}

// Evaluate applies the trigger policy to an event and its target branch.
// Manual dispatch always fires unless explicitly disabled; push and
// merge-request events fire only when the branch matches the configured
// pattern list.
func Evaluate(policy config.TriggerConfig, event Event, branch string) Decision {
	switch event {
	case EventManual:
		if policy.Manual != nil && !*policy.Manual {
			return Decision{Run: false, Reason: "manual dispatch disabled"}
		}
		return Decision{Run: true, Reason: "manual dispatch"}

	case EventPush:
		if config.MatchPatterns(policy.Push.Branches, branch) {
			return Decision{Run: true, Reason: fmt.Sprintf("push to %q matches trigger branches", branch)}
		}
		return Decision{Run: false, Reason: fmt.Sprintf("push to %q does not match trigger branches", branch)}

	case EventMergeRequest:
		if config.MatchPatterns(policy.MergeRequest.Branches, branch) {
			return Decision{Run: true, Reason: fmt.Sprintf("merge request targeting %q matches trigger branches", branch)}
		}
		return Decision{Run: false, Reason: fmt.Sprintf("merge request targeting %q does not match trigger branches", branch)}
	}

	return Decision{Run: false, Reason: fmt.Sprintf("unknown event %q", event)}
}
