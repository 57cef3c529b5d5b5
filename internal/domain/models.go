package domain

// RemoteChannel identifies a Telegram channel together with the access
// hash required to address it through the vendor API
type RemoteChannel struct {
	ID         int64
	AccessHash int64
	Title      string
}

// RemoteChannelSummary describes a channel the authenticated identity
// owns or administers, as reported by the vendor dialog list
type RemoteChannelSummary struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Username     string `json:"username,omitempty"`
	MemberCount  int    `json:"memberCount"`
	IsCreator    bool   `json:"isCreator"`
	IsBroadcast  bool   `json:"isBroadcast"`
	AccessHash   int64  `json:"-"`
}

// InviteResult is the outcome of inviting the platform bot into a channel.
// Success=false with a Message is a recoverable vendor rejection, not an error:
// the channel exists and stays usable, only without the bot. CanonicalID is
// the channel identity the vendor reports back, which can differ from the
// requested ID after a migration; it echoes the request when the vendor
// reports none.
type InviteResult struct {
	Success     bool
	Message     string
	CanonicalID int64
}
