package schema

import (
	"fmt"
	"strings"
	"time"
)

// gerritTimeLayout is the timestamp format used by the Gerrit REST API.
const gerritTimeLayout = "2006-01-02 15:04:05.000000000"

// GerritTime wraps time.Time to decode Gerrit's non-RFC3339 timestamps.
type GerritTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler for Gerrit timestamps.
func (g *GerritTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		g.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(gerritTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid gerrit timestamp %q: %w", s, err)
	}
	g.Time = t.UTC()
	return nil
}

// MarshalJSON implements json.Marshaler for Gerrit timestamps.
func (g GerritTime) MarshalJSON() ([]byte, error) {
	if g.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + g.Time.UTC().Format(gerritTimeLayout) + `"`), nil
}

// AccountInfo is a Gerrit account entity.
type AccountInfo struct {
	AccountID int    `json:"_account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Inactive  bool   `json:"inactive"`
}

// DisplayName returns the best human-readable label for an account.
func (a AccountInfo) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Username != "" {
		return a.Username
	}
	return a.Email
}

// ProjectInfo is a Gerrit project entity.
type ProjectInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	State       string `json:"state"`
}

// ChangeInfo is a Gerrit change entity, reduced to the fields gerritlens
// records. The trailing _more_changes marker drives pagination.
type ChangeInfo struct {
	ID                string      `json:"id"`
	Project           string      `json:"project"`
	Subject           string      `json:"subject"`
	Status            string      `json:"status"`
	Created           GerritTime  `json:"created"`
	Updated           GerritTime  `json:"updated"`
	Submitted         GerritTime  `json:"submitted"`
	Insertions        int         `json:"insertions"`
	Deletions         int         `json:"deletions"`
	TotalCommentCount int         `json:"total_comment_count"`
	Owner             AccountInfo `json:"owner"`
	MoreChanges       bool        `json:"_more_changes"`
}

// CommitEvent is the normalized form of a change used by the recorder.
type CommitEvent struct {
	Project      string       `json:"project"`
	Status       ChangeStatus `json:"status"`
	Created      time.Time    `json:"created"`
	Submitted    time.Time    `json:"submitted"` // zero unless merged
	Insertions   int          `json:"insertions"`
	Deletions    int          `json:"deletions"`
	CommentCount int          `json:"comment_count"`
	Owner        string       `json:"owner"`
}

// ReviewTime returns the created-to-submitted duration, or zero when the
// change was never submitted.
func (e CommitEvent) ReviewTime() time.Duration {
	if e.Submitted.IsZero() {
		return 0
	}
	return e.Submitted.Sub(e.Created)
}

// Merged reports whether the change was submitted.
func (e CommitEvent) Merged() bool {
	return e.Status == MergedChange && !e.Submitted.IsZero()
}

// EventFromChange converts a Gerrit change into a CommitEvent.
func EventFromChange(c ChangeInfo) CommitEvent {
	return CommitEvent{
		Project:      c.Project,
		Status:       ChangeStatus(strings.ToUpper(c.Status)),
		Created:      c.Created.Time,
		Submitted:    c.Submitted.Time,
		Insertions:   c.Insertions,
		Deletions:    c.Deletions,
		CommentCount: c.TotalCommentCount,
		Owner:        c.Owner.DisplayName(),
	}
}
