package entities

// Party is the roster that shares one inventory. Members[0] is the leader.
type Party struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
}

// Leader returns the first member, or "" for an empty party
func (p *Party) Leader() string {
	if p == nil || len(p.Members) == 0 {
		return ""
	}
	return p.Members[0]
}

// MemberAt returns the member at roster position i
func (p *Party) MemberAt(i int) (string, bool) {
	if p == nil || i < 0 || i >= len(p.Members) {
		return "", false
	}
	return p.Members[i], true
}
