package domain

// View is a user as rendered in an API response. Password is omitted from
// the JSON entirely when empty, so non-owners never see the field at all.
type View struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Password string `json:"password,omitempty"`
}

// Project renders a user for a response. The password is included iff the
// requester is the record's owner, matched on the immutable id, never on
// the username. Every response carrying a user record goes through here,
// including the record returned right after a mutation.
func Project(u User, requesterID ID) View {
	view := View{
		ID:       string(u.ID),
		Username: u.Username,
		Avatar:   u.Avatar,
	}
	if requesterID == u.ID {
		view.Password = u.Password
	}
	return view
}
