package api

// Addresses are 0x-prefixed hex strings, amounts are integers in the
// ledger's payment unit and timestamps are Unix seconds.

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RequestChallengeRequest struct {
	Address string `json:"address"`
}

type RequestChallengeResponse struct {
	Message   string `json:"message"`
	ExpiresAt int64  `json:"expires_at"`
}

type LoginRequest struct {
	Address string `json:"address"`
	// Signature is the hex-encoded 65-byte personal_sign signature of the
	// challenge message.
	Signature string `json:"signature"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Event struct {
	Seq          uint64 `json:"seq"`
	Kind         string `json:"kind"`
	PostID       uint64 `json:"post_id"`
	Account      string `json:"account"`
	Counterparty string `json:"counterparty,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	Amount       uint64 `json:"amount"`
	Timestamp    int64  `json:"timestamp"`
}

type PublishFreeContentRequest struct {
	Content string `json:"content"`
}

type PublishPaidContentRequest struct {
	Content string `json:"content"`
	Price   uint64 `json:"price"`
}

type PublishResponse struct {
	PostID uint64   `json:"post_id"`
	Events []*Event `json:"events"`
}

type AccessContentRequest struct {
	PostID  uint64 `json:"post_id"`
	Payment uint64 `json:"payment"`
}

type AccessContentResponse struct {
	Content string   `json:"content"`
	Events  []*Event `json:"events"`
}

type ViewContentRequest struct {
	PostID uint64 `json:"post_id"`
}

type ViewContentResponse struct {
	Content string `json:"content"`
}

type GetPostInfoRequest struct {
	PostID uint64 `json:"post_id"`
}

type PostInfo struct {
	PostID      uint64 `json:"post_id"`
	Author      string `json:"author"`
	ContentType string `json:"content_type"`
	Price       uint64 `json:"price"`
	Timestamp   int64  `json:"timestamp"`
}

type GetUserPostsRequest struct {
	Address string `json:"address"`
}

type GetUserPostsResponse struct {
	PostIDs []uint64 `json:"post_ids"`
}

type GetCreatorBalanceRequest struct {
	Address string `json:"address"`
}

type BalanceResponse struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// GetDepositRequest asks for the caller's own deposit.
type GetDepositRequest struct{}

type GetLedgerInfoRequest struct{}

type LedgerInfo struct {
	Owner              string `json:"owner"`
	Renounced          bool   `json:"renounced"`
	PlatformFeePercent uint64 `json:"platform_fee_percent"`
	PaymentUnit        string `json:"payment_unit"`
	NextPostID         uint64 `json:"next_post_id"`
	PlatformBalance    uint64 `json:"platform_balance"`
}

type WithdrawRequest struct{}

type WithdrawResponse struct {
	Amount uint64   `json:"amount"`
	Events []*Event `json:"events"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type RenounceOwnershipRequest struct{}

type OwnershipResponse struct {
	Owner  string   `json:"owner"`
	Events []*Event `json:"events"`
}

type RequestUploadURLRequest struct{}

type RequestUploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type GetContentURLRequest struct {
	PostID uint64 `json:"post_id"`
}

type GetContentURLResponse struct {
	URL string `json:"url"`
}

type ListEventsRequest struct {
	SinceSeq uint64 `json:"since_seq"`
	Limit    uint32 `json:"limit"`
}

type ListEventsResponse struct {
	Events []*Event `json:"events"`
}
