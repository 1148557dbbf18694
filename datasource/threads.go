package datasource

import "fmt"

type ThreadStatus string

const (
	ThreadActive   ThreadStatus = "active"
	ThreadFixed    ThreadStatus = "fixed"
	ThreadWontFix  ThreadStatus = "wontFix"
	ThreadClosed   ThreadStatus = "closed"
	ThreadByDesign ThreadStatus = "byDesign"
	ThreadPending  ThreadStatus = "pending"
	ThreadUnknown  ThreadStatus = "unknown"
)

type CommentKind string

const (
	CommentText       CommentKind = "text"
	CommentCodeChange CommentKind = "codeChange"
	CommentSystem     CommentKind = "system"
	CommentUnknown    CommentKind = "unknown"
)

type Comment struct {
	Kind CommentKind
}

// Thread is a comment conversation attached to a pull request.
type Thread struct {
	ID       int
	Deleted  bool
	Status   ThreadStatus
	Comments []Comment
}

func (t Thread) hasTextComment() bool {
	for _, c := range t.Comments {
		if c.Kind == CommentText {
			return true
		}
	}
	return false
}

type CommentCount struct {
	Resolved int `json:"resolved"`
	Total    int `json:"total"`
}

func (c CommentCount) String() string {
	return fmt.Sprintf("%d / %d", c.Resolved, c.Total)
}

// CountComments counts the live threads holding at least one text comment
// and, among those, the closed ones.
func CountComments(threads []Thread) CommentCount {
	count := CommentCount{}
	for _, t := range threads {
		if t.Deleted || !t.hasTextComment() {
			continue
		}
		count.Total++
		if t.Status == ThreadClosed {
			count.Resolved++
		}
	}
	return count
}
